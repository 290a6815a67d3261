package cli

import (
	"fmt"
	"io"

	"auction-storefront/internal/domain/image"

	"github.com/spf13/cobra"
)

func (s *state) imagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "images",
		Aliases: []string{"image"},
		Short:   "Manage auction images",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "upload <auction-id> <file>...",
			Short: "Upload image files one after another",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("auction id", args[0])
				if err != nil {
					return err
				}
				if err := s.requireLogin(cmd); err != nil {
					return err
				}

				result, err := s.uploadFiles(cmd, id, args[1:])
				if err != nil {
					return err
				}
				return s.printer().print(result, func(w io.Writer) {
					formatUploadResult(w, result)
				})
			},
		},
		&cobra.Command{
			Use:   "list <auction-id>",
			Short: "List the images of an auction in display order",
			Args:  cobra.ExactArgs(1),
			RunE: idArg("auction id", func(cmd *cobra.Command, id int64) error {
				images, err := s.rt.Images.GetAuctionImages(cmd.Context(), id)
				if err != nil {
					return err
				}
				return s.printer().print(images, func(w io.Writer) {
					formatImages(w, images)
				})
			}),
		},
		&cobra.Command{
			Use:   "primary <image-id>",
			Short: "Make an image the primary image",
			Args:  cobra.ExactArgs(1),
			RunE: idArg("image id", func(cmd *cobra.Command, id int64) error {
				if err := s.requireLogin(cmd); err != nil {
					return err
				}
				if err := s.rt.Images.SetPrimaryImage(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(s.opts.Out, "Image #%d is now primary.\n", id)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "delete <image-id>",
			Short: "Delete an image",
			Args:  cobra.ExactArgs(1),
			RunE: idArg("image id", func(cmd *cobra.Command, id int64) error {
				if err := s.requireLogin(cmd); err != nil {
					return err
				}
				if err := s.rt.Images.DeleteImage(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(s.opts.Out, "Image #%d deleted.\n", id)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "reorder <auction-id> <image-id>...",
			Short: "Set the display order of an auction's images",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("auction id", args[0])
				if err != nil {
					return err
				}
				imageIDs, err := parseIDs("image id", args[1:])
				if err != nil {
					return err
				}
				if err := s.requireLogin(cmd); err != nil {
					return err
				}
				if err := s.rt.Images.ReorderImages(cmd.Context(), id, imageIDs); err != nil {
					return err
				}
				fmt.Fprintf(s.opts.Out, "Images of auction #%d reordered.\n", id)
				return nil
			},
		},
	)
	return cmd
}

// uploadFiles validates every file before uploading any of them, then
// uploads the batch with progress on stderr
func (s *state) uploadFiles(cmd *cobra.Command, auctionID int64, paths []string) (image.UploadResult, error) {
	files := make([]image.File, 0, len(paths))
	for _, path := range paths {
		file, err := image.Open(path)
		if err != nil {
			return image.UploadResult{}, err
		}
		if v := s.rt.Images.ValidateImageFile(file); !v.Valid {
			return image.UploadResult{}, fmt.Errorf("%s: %s", file.Name, v.Error)
		}
		files = append(files, file)
	}

	result := s.rt.Images.UploadMultipleImages(cmd.Context(), auctionID, files, func(percent int) {
		fmt.Fprintf(s.opts.Err, "\rUploading... %3d%%", percent)
	})
	fmt.Fprintln(s.opts.Err)
	return result, nil
}
