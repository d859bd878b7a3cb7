package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go"
	"github.com/cloudinary/cloudinary-go/api/uploader"
	"github.com/gosimple/slug"

	"swiftship-api-io/api/pkg/apperr"
	"swiftship-api-io/api/pkg/models"
	"swiftship-api-io/api/pkg/util"
)

const uploadTimeout = 40 * time.Second

// CloudinaryUploader stores inline base64 payloads in Cloudinary and hands
// back their public URLs.
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader() (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(
		util.LoadEnvFor("CLOUDINARY_CLOUDNAME"),
		util.LoadEnvFor("CLOUDINARY_API_KEY"),
		util.LoadEnvFor("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.External, err, "initializing media storage client")
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file models.Base64File, folder string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	// Clients may send a full data URI or just the base64 body.
	data := file.Data
	if !strings.HasPrefix(data, "data:") {
		data = fmt.Sprintf("data:%s;base64,%s", file.Type, data)
	}

	publicID := fmt.Sprintf("%s-%d", slug.Make(file.Name), time.Now().UnixNano())
	result, err := u.cld.Upload.Upload(ctx, data, uploader.UploadParams{
		Folder:   folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", apperr.Wrap(apperr.External, err, "uploading file to media storage")
	}
	return result.SecureURL, nil
}
