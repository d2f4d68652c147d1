package tools

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileSystemTool gives the model sandboxed list/read/create/edit
// access under the project root, mainly the knowledge_base and output
// directories.
type FileSystemTool struct {
	validator *FileValidator
	logger    *log.Logger
}

func NewFileSystemTool(projectRoot string) (*FileSystemTool, error) {
	validator, err := NewFileValidator(projectRoot)
	if err != nil {
		return nil, err
	}
	if err := validator.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create required directories: %w", err)
	}
	return &FileSystemTool{
		validator: validator,
		logger:    log.New(log.Writer(), "[FSTOOL] ", log.LstdFlags),
	}, nil
}

func (t *FileSystemTool) Name() string { return "file_system" }

func (t *FileSystemTool) Description() string {
	return "Perform file system operations: list, read, create, and edit files in knowledge_base and output directories"
}

func (t *FileSystemTool) Parameters() []Parameter {
	return []Parameter{
		{Name: "operation", Type: "string", Description: "File operation to perform", Required: true, Enum: []string{"list", "read", "create", "edit"}},
		{Name: "file_path", Type: "string", Description: "Relative file path (e.g., 'knowledge_base/data.csv', 'output/report.md')"},
		{Name: "directory", Type: "string", Description: "Directory to list (for list operation)"},
		{Name: "content", Type: "string", Description: "File content (for create/edit operations)"},
		{Name: "edit_mode", Type: "string", Description: "Edit mode: append, prepend, replace", Enum: []string{"append", "prepend", "replace"}},
	}
}

func (t *FileSystemTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	operation := stringArg(args, "operation")

	var result string
	switch operation {
	case "list":
		result = t.listFiles(stringArg(args, "directory"))
	case "read":
		result = t.readFile(stringArg(args, "file_path"))
	case "create":
		result = t.createFile(stringArg(args, "file_path"), stringArg(args, "content"))
	case "edit":
		mode := stringArg(args, "edit_mode")
		if mode == "" {
			mode = "append"
		}
		result = t.editFile(stringArg(args, "file_path"), stringArg(args, "content"), mode)
	default:
		return fmt.Sprintf("❌ Unknown operation: %s. Use: list, read, create, or edit", operation), nil
	}

	t.logger.Printf("operation=%s path=%s result_length=%d", operation, stringArg(args, "file_path"), len(result))
	return result, nil
}

func (t *FileSystemTool) listFiles(directory string) string {
	if directory == "" {
		var b strings.Builder
		b.WriteString("📂 Project Directory Structure\n\n")

		b.WriteString("📁 knowledge_base/ (input data)\n")
		for _, line := range listDirEntries(t.validator.KnowledgeBase()) {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n📁 output/ (generated content)\n")
		outputEntries := listDirEntries(t.validator.OutputDir())
		if len(outputEntries) == 0 {
			b.WriteString("  (empty - ready for generated content)\n")
		}
		for _, line := range outputEntries {
			b.WriteString("  " + line + "\n")
		}
		return b.String()
	}

	dirPath, err := t.validator.ValidatePath(directory, "list")
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	if _, statErr := os.Stat(dirPath); statErr != nil {
		return fmt.Sprintf("📂 Directory not found: %s\n\nAvailable directories:\n- knowledge_base/\n- output/", directory)
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Sprintf("❌ Error listing directory: %v", err)
	}

	var files, dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, fmt.Sprintf("📁 %s/", entry.Name()))
			continue
		}
		info, infoErr := entry.Info()
		if infoErr != nil {
			continue
		}
		files = append(files, fmt.Sprintf("📄 %s (%s)", entry.Name(), formatSize(info.Size())))
	}
	sort.Strings(dirs)
	sort.Strings(files)

	var b strings.Builder
	fmt.Fprintf(&b, "📂 Directory: %s\n\n", directory)
	if len(dirs) > 0 {
		b.WriteString("📁 Subdirectories:\n" + strings.Join(dirs, "\n") + "\n\n")
	}
	if len(files) > 0 {
		b.WriteString("📄 Files:\n" + strings.Join(files, "\n"))
	} else {
		b.WriteString("No files found.")
	}
	return b.String()
}

func (t *FileSystemTool) readFile(filePath string) string {
	if filePath == "" {
		return "❌ file_path parameter required for read operation"
	}

	fullPath, err := t.validator.ValidatePath(filePath, "read")
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	if err := t.validator.ValidateFileSize(fullPath); err != nil {
		return fmt.Sprintf("❌ %v", err)
	}

	content, err := t.validator.SafeContent(fullPath)
	if err != nil {
		return fmt.Sprintf("❌ Error reading file: %v", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📄 File: %s\n", filePath)
	fmt.Fprintf(&b, "📊 Size: %d bytes\n", content.FullSize)
	if content.IsBinary {
		b.WriteString("⚠️ Binary file detected - cannot display content\n")
		return b.String()
	}
	if content.Truncated {
		fmt.Fprintf(&b, "⚠️ Content truncated (showing %d of %d bytes)\n", content.DisplayedSize, content.FullSize)
	}
	fmt.Fprintf(&b, "\n📝 Content:\n%s\n%s", strings.Repeat("-", 40), content.Content)
	return b.String()
}

func (t *FileSystemTool) createFile(filePath, content string) string {
	if filePath == "" {
		return "❌ file_path parameter required for create operation"
	}

	fullPath, err := t.validator.ValidatePath(filePath, "create")
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}

	if _, statErr := os.Stat(fullPath); statErr == nil {
		return fmt.Sprintf("❌ File already exists: %s\nUse edit operation to modify existing files.", filePath)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Sprintf("❌ Error creating file: %v", err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		return fmt.Sprintf("❌ Error creating file: %v", err)
	}

	info, statErr := os.Stat(fullPath)
	var size int64
	if statErr == nil {
		size = info.Size()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ File created successfully: %s\n", filePath)
	fmt.Fprintf(&b, "📊 Size: %d bytes\n", size)
	fmt.Fprintf(&b, "📝 Content length: %d characters", len(content))
	return b.String()
}

func (t *FileSystemTool) editFile(filePath, content, editMode string) string {
	if filePath == "" {
		return "❌ file_path parameter required for edit operation"
	}
	if editMode != "append" && editMode != "prepend" && editMode != "replace" {
		return fmt.Sprintf("❌ Invalid edit_mode: %s. Use: append, prepend, or replace", editMode)
	}

	fullPath, err := t.validator.ValidatePath(filePath, "edit")
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}

	existing, readErr := os.ReadFile(fullPath)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return fmt.Sprintf("❌ File not found: %s\nUse create operation to make new files.", filePath)
		}
		return fmt.Sprintf("❌ Error editing file: %v", readErr)
	}

	var updated string
	switch editMode {
	case "append":
		updated = string(existing) + content
	case "prepend":
		updated = content + string(existing)
	case "replace":
		updated = content
	}

	if err := os.WriteFile(fullPath, []byte(updated), 0o644); err != nil {
		return fmt.Sprintf("❌ Error editing file: %v", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ File edited successfully: %s\n", filePath)
	fmt.Fprintf(&b, "📊 Mode: %s\n", editMode)
	fmt.Fprintf(&b, "📊 Size change: %d → %d characters\n", len(existing), len(updated))
	fmt.Fprintf(&b, "📝 Added: %d characters", len(content))
	return b.String()
}

func formatSize(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%d bytes", size)
	}
	return fmt.Sprintf("%.1f KB", float64(size)/1024)
}

func listDirEntries(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, infoErr := entry.Info()
		if infoErr != nil {
			continue
		}
		out = append(out, fmt.Sprintf("📄 %s (%s)", entry.Name(), formatSize(info.Size())))
	}
	sort.Strings(out)
	return out
}
