package tools

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	maxFileSize       = 10 * 1024 * 1024 // read cap
	maxContentDisplay = 100 * 1024       // display cap
	binaryProbeSize   = 8192
)

var allowedExtensions = map[string]bool{
	".txt": true, ".md": true, ".csv": true, ".json": true,
	".py": true, ".js": true, ".go": true, ".html": true,
	".css": true, ".xml": true, ".yaml": true, ".yml": true,
	".log": true,
}

var forbiddenPaths = []string{
	".env", ".git", "node_modules", "vendor", "__pycache__",
	"Dockerfile", "docker-compose.yml", ".next",
	"package-lock.json", "requirements.txt", "go.sum",
}

// FileValidator confines file operations to a project root with an
// extension allowlist, a path denylist and size limits.
type FileValidator struct {
	projectRoot   string
	knowledgeBase string
	outputDir     string
	logger        *log.Logger
}

func NewFileValidator(projectRoot string) (*FileValidator, error) {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}
	v := &FileValidator{
		projectRoot:   abs,
		knowledgeBase: filepath.Join(abs, "knowledge_base"),
		outputDir:     filepath.Join(abs, "output"),
		logger:        log.New(log.Writer(), "[SECURITY] ", log.LstdFlags),
	}
	v.logger.Printf("file validator initialized with root: %s", abs)
	return v, nil
}

func (v *FileValidator) ProjectRoot() string   { return v.projectRoot }
func (v *FileValidator) KnowledgeBase() string { return v.knowledgeBase }
func (v *FileValidator) OutputDir() string     { return v.outputDir }

// EnsureDirectories creates the knowledge_base and output directories.
func (v *FileValidator) EnsureDirectories() error {
	if err := os.MkdirAll(v.knowledgeBase, 0o755); err != nil {
		return err
	}
	return os.MkdirAll(v.outputDir, 0o755)
}

// ValidatePath checks a user-supplied relative path for operation and
// returns the resolved absolute path. The error text is written for
// the model, not the operator.
func (v *FileValidator) ValidatePath(filePath, operation string) (string, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(filePath), "\\", "/")

	if strings.HasPrefix(clean, "/") || strings.Contains(clean, ":") {
		return "", fmt.Errorf("Absolute paths not allowed. Use relative paths only.")
	}

	full := filepath.Join(v.projectRoot, filepath.FromSlash(clean))
	full = filepath.Clean(full)

	// filepath.Join cleans ".." segments, so a traversal attempt
	// lands outside the root and fails this prefix check.
	if full != v.projectRoot && !strings.HasPrefix(full, v.projectRoot+string(os.PathSeparator)) {
		v.logger.Printf("path traversal attempt: %q", filePath)
		return "", fmt.Errorf("Path traversal detected. Access denied.")
	}

	for _, forbidden := range forbiddenPaths {
		if strings.Contains(full, forbidden) {
			return "", fmt.Errorf("Access to %s is not allowed.", forbidden)
		}
	}

	switch operation {
	case "read":
		info, err := os.Stat(full)
		if err != nil {
			return "", fmt.Errorf("File not found: %s", clean)
		}
		if info.IsDir() {
			return "", fmt.Errorf("Path is not a file: %s", clean)
		}
	case "create", "edit":
		ext := strings.ToLower(filepath.Ext(full))
		if !allowedExtensions[ext] {
			return "", fmt.Errorf("File type not allowed: %s. Allowed: %s", ext, allowedExtensionList())
		}
	case "list":
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			return "", fmt.Errorf("Path is not a directory: %s", clean)
		}
	}

	return full, nil
}

// ValidateFileSize rejects files over the read cap.
func (v *FileValidator) ValidateFileSize(fullPath string) error {
	info, err := os.Stat(fullPath)
	if err != nil {
		return nil
	}
	if info.Size() > maxFileSize {
		return fmt.Errorf("File too large: %.1fMB (max: %dMB)",
			float64(info.Size())/1024/1024, maxFileSize/1024/1024)
	}
	return nil
}

// FileContent is the result of a guarded read.
type FileContent struct {
	Content       string
	Truncated     bool
	FullSize      int64
	DisplayedSize int
	IsBinary      bool
}

// SafeContent reads a file with a binary probe and display truncation.
func (v *FileValidator) SafeContent(fullPath string) (FileContent, error) {
	info, err := os.Stat(fullPath)
	if err != nil {
		return FileContent{}, err
	}
	size := info.Size()

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return FileContent{}, err
	}

	probe := data
	if len(probe) > binaryProbeSize {
		probe = probe[:binaryProbeSize]
	}
	if bytes.IndexByte(probe, 0) >= 0 {
		return FileContent{
			Content:  "[BINARY FILE - Cannot display content]",
			FullSize: size,
			IsBinary: true,
		}, nil
	}

	if len(data) > maxContentDisplay {
		shown := string(data[:maxContentDisplay])
		return FileContent{
			Content:       shown + "\n\n[TRUNCATED - File too large for display]",
			Truncated:     true,
			FullSize:      size,
			DisplayedSize: len(shown),
		}, nil
	}

	return FileContent{
		Content:       string(data),
		FullSize:      size,
		DisplayedSize: len(data),
	}, nil
}

func allowedExtensionList() string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}
