package profile

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wonny/sensai/internal/s0_data/quality"
)

// Load reads a profiles YAML file
// KnownFields(true)로 오타/미사용 필드 즉시 실패
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes and validates a profiles document.
// Quality thresholds left out of the document keep their defaults.
func Parse(r io.Reader) (*File, error) {
	f := File{Quality: quality.DefaultConfig()}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true) // 알 수 없는 필드 발견 시 에러 반환
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	if err := Validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Hash returns the SHA256 of the canonical JSON form of f.
// Logged with each run so results can be traced to the profile set that produced them.
func Hash(f *File) (string, error) {
	// json.Marshal sorts map keys
	jsonBytes, err := json.Marshal(f)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
