package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"gorm.io/gorm"

	"skillquiz/apperrors"
	"skillquiz/models"
)

const maxProfilePicSize = 2 * 1024 * 1024

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// ObjectStore is the slice of the S3 client the user service needs.
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type UserService struct {
	db     *gorm.DB
	store  ObjectStore
	bucket string
	region string
}

func NewUserService(db *gorm.DB, store ObjectStore, bucket, region string) *UserService {
	return &UserService{db: db, store: store, bucket: bucket, region: region}
}

func (s *UserService) GetUserByID(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("failed to fetch user profile", err)
	}
	return &user, nil
}

type UpdateAddressRequest struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Mobile     string `json:"mobile"`
}

// UpdateAddress replaces the user's address and mobile wholesale.
func (s *UserService) UpdateAddress(userID string, req *UpdateAddressRequest) (*models.User, error) {
	if req.PostalCode == "" || req.Country == "" {
		return nil, apperrors.Validation("postal code and country required")
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	user.Address = &models.Address{
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	}
	user.Mobile = req.Mobile

	if err := s.db.Save(user).Error; err != nil {
		return nil, apperrors.Internal("failed to update address", err)
	}
	return user, nil
}

// UploadProfilePicture stores the image under a key derived from the user ID,
// so a re-upload overwrites the previous picture, and records the public URL
// on the user.
func (s *UserService) UploadProfilePicture(ctx context.Context, userID string, data []byte, filename, contentType string) (string, error) {
	if len(data) == 0 {
		return "", apperrors.Validation("no file uploaded")
	}
	if len(data) > maxProfilePicSize {
		return "", apperrors.Validation("file exceeds 2 MB limit")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExts[ext] {
		return "", apperrors.Validation("only image files are allowed")
	}

	key := fmt.Sprintf("profile_pics/%s%s", userID, ext)
	_, err := s.store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", apperrors.Internal("failed to upload profile picture", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	if err := s.db.Model(&models.User{}).Where("user_id = ?", userID).Update("profile_pic", url).Error; err != nil {
		return "", apperrors.Internal("failed to update profile picture", err)
	}

	return url, nil
}
