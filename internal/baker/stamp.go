package baker

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// Stamp records what the last successful bake read and wrote. A bake whose
// inputs, settings and output all still hash the same is skipped.
type Stamp struct {
	Settings string            `json:"settings"`
	Inputs   map[string]string `json:"inputs"`
	Output   string            `json:"output"`
}

func digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// fileDigest hashes the file at path.
func fileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// inputDigests hashes every input named by cfg.
func inputDigests(cfg Config) (map[string]string, error) {
	paths := append([]string{cfg.MapPath}, cfg.SpritePaths...)
	digests := make(map[string]string, len(paths))
	for _, p := range paths {
		d, err := fileDigest(p)
		if err != nil {
			return nil, err
		}
		digests[p] = d
	}
	return digests, nil
}

// newStamp builds the stamp describing a bake of cfg that produced output.
func newStamp(cfg Config, output []byte) (Stamp, error) {
	inputs, err := inputDigests(cfg)
	if err != nil {
		return Stamp{}, err
	}
	return Stamp{
		Settings: cfg.settingsKey(),
		Inputs:   inputs,
		Output:   digest(output),
	}, nil
}

// ReadStamp loads the stamp at path. A missing file yields a zero Stamp.
func ReadStamp(path string) (Stamp, error) {
	var s Stamp
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(content, &s); err != nil {
		return s, fmt.Errorf("failed to parse stamp %s: %w", path, err)
	}
	return s, nil
}

// WriteStamp stores s at path.
func WriteStamp(path string, s Stamp) error {
	content, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, append(content, '\n'))
}

// upToDate reports whether the output of cfg is current with respect to the
// stamp. Unreadable inputs count as changed so the bakers report them.
func upToDate(cfg Config, s Stamp) bool {
	if s.Settings != cfg.settingsKey() {
		return false
	}

	inputs, err := inputDigests(cfg)
	if err != nil || len(inputs) != len(s.Inputs) {
		return false
	}
	for p, d := range inputs {
		if s.Inputs[p] != d {
			return false
		}
	}

	out, err := fileDigest(cfg.OutPath)
	if err != nil {
		return false
	}
	return out == s.Output
}

// writeFileAtomic replaces path with data so readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".bake-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
