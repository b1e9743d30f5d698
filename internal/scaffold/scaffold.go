// Package scaffold generates the input folders and solver boilerplate for a
// new puzzle day.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"github.com/aoc-runner/aoc/internal/input"
	"github.com/aoc-runner/aoc/internal/solver"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

	yearPackagePattern = regexp.MustCompile(`^y\d{4}$`)
)

// Scaffolder creates files below an inputs root and a solver package directory.
type Scaffolder struct {
	inputs     input.Resolver
	packageDir string
	modulePath string
}

// Result lists the paths a scaffold call touched.
type Result struct {
	Created []string
	Skipped []string
}

func (r *Result) created(path string) { r.Created = append(r.Created, path) }

func (r *Result) skipped(path string) { r.Skipped = append(r.Skipped, path) }

// New builds a Scaffolder. packageDir is relative to the module root and is
// also used as the import path suffix in the generated link file.
func New(inputsRoot, packageDir, modulePath string) (*Scaffolder, error) {
	packageDir = filepath.ToSlash(strings.Trim(strings.TrimSpace(packageDir), "/"))
	modulePath = strings.TrimSpace(modulePath)
	if packageDir == "" {
		return nil, errors.New("solver package directory is required")
	}
	if modulePath == "" {
		return nil, errors.New("module path is required")
	}
	return &Scaffolder{
		inputs:     input.NewResolver(inputsRoot),
		packageDir: packageDir,
		modulePath: modulePath,
	}, nil
}

// CreateYear creates the inputs folder and the solver package for year.
func (s *Scaffolder) CreateYear(year int) (Result, error) {
	var result Result
	inputsDir := filepath.Join(s.inputs.Root, fmt.Sprint(year), input.InputsDir)
	if err := mkdir(inputsDir, &result); err != nil {
		return result, err
	}
	if err := s.writeYearPackage(year, &result); err != nil {
		return result, err
	}
	return result, s.writeLinkFile(&result)
}

// CreateDay creates the day's input files and solver source. Existing files
// are left untouched.
func (s *Scaffolder) CreateDay(year, day int) (Result, error) {
	result, err := s.CreateYear(year)
	if err != nil {
		return result, err
	}

	key := solver.Key{Year: year, Day: day}
	dayDir := s.inputs.DayDir(key)
	if err := mkdir(dayDir, &result); err != nil {
		return result, err
	}
	for _, name := range []string{input.TestPart1File, input.TestPart2File, input.ProductionFile} {
		if err := touch(filepath.Join(dayDir, name), &result); err != nil {
			return result, err
		}
	}

	data := templateData{
		Year:       year,
		Day:        day,
		DayPadded:  fmt.Sprintf("%02d", day),
		ModulePath: s.modulePath,
	}
	sourcePath := filepath.Join(s.yearPackageDir(year), fmt.Sprintf("day%02d.go", day))
	if err := writeTemplate(sourcePath, "day.go.tmpl", data, false, &result); err != nil {
		return result, err
	}
	return result, nil
}

// YearPackages lists the solver year packages present on disk.
func (s *Scaffolder) YearPackages() ([]string, error) {
	entries, err := os.ReadDir(filepath.FromSlash(s.packageDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read solver packages: %w", err)
	}
	packages := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() && yearPackagePattern.MatchString(entry.Name()) {
			packages = append(packages, entry.Name())
		}
	}
	sort.Strings(packages)
	return packages, nil
}

type templateData struct {
	Year       int
	Day        int
	DayPadded  string
	ModulePath string
	PackageDir string
	Packages   []string
}

func (s *Scaffolder) yearPackageDir(year int) string {
	return filepath.Join(filepath.FromSlash(s.packageDir), fmt.Sprintf("y%d", year))
}

func (s *Scaffolder) writeYearPackage(year int, result *Result) error {
	dir := s.yearPackageDir(year)
	if err := mkdir(dir, result); err != nil {
		return err
	}
	return writeTemplate(filepath.Join(dir, "doc.go"), "doc.go.tmpl", templateData{Year: year}, false, result)
}

func (s *Scaffolder) writeLinkFile(result *Result) error {
	packages, err := s.YearPackages()
	if err != nil {
		return err
	}
	dir := filepath.Join(filepath.FromSlash(s.packageDir), "all")
	if err := mkdir(dir, result); err != nil {
		return err
	}
	data := templateData{
		ModulePath: s.modulePath,
		PackageDir: s.packageDir,
		Packages:   packages,
	}
	return writeTemplate(filepath.Join(dir, "all.go"), "all.go.tmpl", data, true, result)
}

func writeTemplate(path, name string, data templateData, overwrite bool, result *Result) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			result.skipped(path)
			return nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat %q: %w", path, err)
		}
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	source, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format %s: %w", name, err)
	}

	if overwrite {
		// #nosec G304 -- path is built from the configured solver package directory.
		if existing, readErr := os.ReadFile(path); readErr == nil && bytes.Equal(existing, source) {
			return nil
		}
	}
	if err := os.WriteFile(path, source, 0o600); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	result.created(path)
	return nil
}

func mkdir(dir string, result *Result) error {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	result.created(dir)
	return nil
}

func touch(path string, result *Result) error {
	if _, err := os.Stat(path); err == nil {
		result.skipped(path)
		return nil
	}
	// #nosec G304 -- path is built from the configured inputs root.
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %q: %w", path, err)
	}
	result.created(path)
	return nil
}
