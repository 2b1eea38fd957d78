package data

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"gopkg.in/yaml.v2"
)

// Open reads a JSON file into target.
func Open[T SurfacePayload | Calibration | []SurfacePayload](filename string, target T) (T, error) {
	file, err := os.ReadFile(filename)
	if err != nil {
		return target, err
	}
	err = json.Unmarshal(file, &target)
	if err != nil {
		return target, err
	}
	return target, nil
}

// OpenYAML reads a YAML file into target.
func OpenYAML[T SurfacePayload | Calibration | []SurfacePayload](filename string, target T) (T, error) {
	file, err := os.ReadFile(filename)
	if err != nil {
		return target, err
	}
	err = yaml.Unmarshal(file, &target)
	if err != nil {
		return target, err
	}
	return target, nil
}

// LoadPayload picks the decoder from the file extension.
func LoadPayload(filename string) (SurfacePayload, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return OpenYAML(filename, SurfacePayload{})
	default:
		return Open(filename, SurfacePayload{})
	}
}

// CreateJSON writes raw as indented JSON.
func CreateJSON[T Calibration | []Calibration](raw T, filename string) error {
	b, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0o644)
}

// ProgressBar is the bar shown while maturities calibrate.
func ProgressBar(length int) *progressbar.ProgressBar {
	bar := progressbar.NewOptions(
		length,
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetVisibility(true),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetDescription("calibrating"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	return bar
}
