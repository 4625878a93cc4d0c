package main

import (
	"testing"

	"pet-store/internal/platform/config"

	"github.com/stretchr/testify/assert"
)

func TestS3Config_CarriesPublicBaseURL(t *testing.T) {
	got := s3Config(config.Config{
		S3Bucket:      "pets",
		S3Region:      "us-east-1",
		S3Prefix:      "uploads",
		PublicBaseURL: "https://cdn.example.com",
	})

	assert.Equal(t, "pets", got.Bucket)
	assert.Equal(t, "us-east-1", got.Region)
	assert.Equal(t, "uploads", got.Prefix)
	assert.Equal(t, "https://cdn.example.com", got.PublicBaseURL)
}
