package contracts

// Pipeline Stage 정의 (SSOT)
// 모든 로그, 메트릭 라벨, RunResult에서 이 상수를 사용해야 함
//
// 파이프라인 흐름:
//   S0:Load → S0:Normalize → S1:Metrics → S2:Lineup → S3:Strategy
//   (Export는 S1 결과를 sink로 저장하는 별도 단계)

// Stage represents a pipeline stage
type Stage string

const (
	// StageLoad S0: 원천 데이터 로딩
	// 위치: internal/s0_data/ (CSVSource, APISource)
	StageLoad Stage = "S0:Load"

	// StageNormalize S0: 컬럼 정규화 + 품질 게이트
	// 위치: internal/s0_data/normalizer.go, internal/s0_data/quality/
	StageNormalize Stage = "S0:Normalize"

	// StageMetrics S1: avg_points, cost_benefit 계산
	// 위치: internal/s1_metrics/
	StageMetrics Stage = "S1:Metrics"

	// StageLineup S2: 예산/포메이션 제약 하의 탐욕적 선발
	// 위치: internal/s2_lineup/
	StageLineup Stage = "S2:Lineup"

	// StageStrategy S3: 순위표 + 요약 기반 전략 내러티브
	// 위치: internal/s3_strategy/
	StageStrategy Stage = "S3:Strategy"

	// StageExport 메트릭 테이블 저장
	// 위치: internal/export/
	StageExport Stage = "Export"
)

// String returns the stage name
func (s Stage) String() string {
	return string(s)
}

// ShortName returns abbreviated stage name (e.g., "S0", "S1")
func (s Stage) ShortName() string {
	switch s {
	case StageLoad, StageNormalize:
		return "S0"
	case StageMetrics:
		return "S1"
	case StageLineup:
		return "S2"
	case StageStrategy:
		return "S3"
	case StageExport:
		return "EX"
	default:
		return "UNKNOWN"
	}
}

// Description returns Korean description of the stage
func (s Stage) Description() string {
	switch s {
	case StageLoad:
		return "원천 데이터 로딩"
	case StageNormalize:
		return "컬럼 정규화/품질 검증"
	case StageMetrics:
		return "선수 지표 계산"
	case StageLineup:
		return "라인업 구성"
	case StageStrategy:
		return "전략 내러티브"
	case StageExport:
		return "결과 저장"
	default:
		return "알 수 없음"
	}
}

// AllStages returns all pipeline stages in order
func AllStages() []Stage {
	return []Stage{
		StageLoad,
		StageNormalize,
		StageMetrics,
		StageLineup,
		StageStrategy,
		StageExport,
	}
}

// IsValidStage checks if a stage string is valid
func IsValidStage(s string) bool {
	for _, stage := range AllStages() {
		if string(stage) == s {
			return true
		}
	}
	return false
}

// StageResult represents the outcome of one stage execution
type StageResult struct {
	Stage      Stage  `json:"stage"`
	Success    bool   `json:"success"`
	Rows       int    `json:"rows"`
	DurationMs int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}
