package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zfogg/uploadfile/pkg/output"
	"github.com/zfogg/uploadfile/pkg/service"
	"github.com/zfogg/uploadfile/pkg/upload"
)

var (
	uploadURL      string
	uploadField    string
	uploadFilename string
	uploadType     string
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a file",
	Long: `Upload a file as a single multipart/form-data part.

Use "-" as the file to read the payload from stdin. Without a file, piped
stdin is uploaded, otherwise you are prompted for a path.`,
	Example: `  uploadfile upload photo.jpg --url https://example.com/upload
  cat report.pdf | uploadfile upload --filename report.pdf --field document`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := service.UploadOptions{
			URL:      uploadURL,
			Field:    uploadField,
			Filename: uploadFilename,
			MimeType: uploadType,
		}
		if len(args) > 0 {
			opts.Path = args[0]
		}

		svc := service.NewUploadService(upload.Default())
		outcome, err := svc.Upload(opts)
		if err != nil {
			return err
		}

		if err := output.PrintOutcome(outcome); err != nil {
			return err
		}
		if !outcome.OK() {
			return errUploadFailed
		}
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadURL, "url", "u", "", "Upload endpoint (default: upload.url from config)")
	uploadCmd.Flags().StringVarP(&uploadField, "field", "f", "", "Form field name (default: upload.field from config)")
	uploadCmd.Flags().StringVarP(&uploadFilename, "filename", "n", "", "Filename sent to the server (default: base name of the file)")
	uploadCmd.Flags().StringVarP(&uploadType, "type", "t", "", "MIME type of the payload (default: detected from content)")
}
