package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/au-invoice/internal/render"
)

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show information about rendered invoice PDFs",
	Long: `Validate rendered invoice PDFs and show their page count.

Shows:
  - File size and modification time
  - Whether the file is a structurally valid PDF
  - Number of pages

Examples:
  au-invoice info invoice-20250115-0001.pdf
  au-invoice info *.pdf -f json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// FileInfo describes one inspected PDF
type FileInfo struct {
	File     string `json:"file"`
	Modified string `json:"modified,omitempty"`
	render.PDFInfo
	Error string `json:"error,omitempty"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args, ".pdf")
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	infos := make([]*FileInfo, 0, len(files))
	for _, file := range files {
		infos = append(infos, inspectFile(file))
	}

	if outputFormat == "json" {
		return writeJSON(os.Stdout, infos)
	}

	for _, info := range infos {
		printFileInfo(info)
		fmt.Println()
	}
	return nil
}

func inspectFile(filePath string) *FileInfo {
	out := &FileInfo{File: filePath}

	stat, err := os.Stat(filePath)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.Modified = stat.ModTime().Format("2006-01-02 15:04:05")

	f, err := os.Open(filePath)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	defer f.Close()

	info, err := render.Inspect(f)
	if info != nil {
		out.PDFInfo = *info
	}
	if err != nil {
		out.Error = err.Error()
	}
	return out
}

func printFileInfo(info *FileInfo) {
	fmt.Printf("File: %s\n", info.File)
	if info.Modified == "" {
		fmt.Printf("  Error: %s\n", info.Error)
		return
	}

	fmt.Printf("  Size: %d bytes\n", info.Size)
	fmt.Printf("  Modified: %s\n", info.Modified)
	if info.Valid {
		fmt.Println("  Valid: yes")
		fmt.Printf("  Pages: %d\n", info.Pages)
	} else {
		fmt.Println("  Valid: no")
	}
	if info.Error != "" {
		fmt.Printf("  Error: %s\n", info.Error)
	}
}
