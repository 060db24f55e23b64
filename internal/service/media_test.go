package service

import (
	"bytes"
	"strings"
	"testing"

	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/s3"
	"github.com/betulabla/foundation/internal/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type MediaServiceSuite struct {
	testutil.BaseServiceTestSuite
	service MediaService
}

func TestMediaService(t *testing.T) {
	suite.Run(t, new(MediaServiceSuite))
}

func (s *MediaServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewMediaService(newTestParams(&s.BaseServiceTestSuite), s.GetSentry())
}

func (s *MediaServiceSuite) TestUpload() {
	key, err := s.service.Upload(s.GetContext(), s3.DocumentTypeOrphanPhoto, "orphan_1", pngHeader)
	s.Require().NoError(err)
	s.Contains(key, "orphan_photo/orphan_1/ph_")
	s.True(strings.HasSuffix(key, ".png"))

	doc := s.GetS3().Get(key)
	s.Require().NotNil(doc)
	s.Equal("image/png", doc.ContentType)

	url := s.service.URL(s.GetContext(), &key)
	s.Require().NotNil(url)
	s.Equal("https://media.test/"+key, *url)

	s.service.Delete(s.GetContext(), &key)
	s.Nil(s.GetS3().Get(key))
	s.Nil(s.service.URL(s.GetContext(), &key))
}

func (s *MediaServiceSuite) TestUploadRejects() {
	testCases := []struct {
		name    string
		docType s3.DocumentType
		data    []byte
	}{
		{"empty", s3.DocumentTypeOrphanPhoto, nil},
		{"pdf_as_photo", s3.DocumentTypeOrphanPhoto, []byte("%PDF-1.7 document")},
		{"unknown_content", s3.DocumentTypeReportAttachment, []byte("just some text")},
		{"photo_too_large", s3.DocumentTypeOrphanPhoto, append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 5<<20)...)},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.Upload(s.GetContext(), tc.docType, "owner_1", tc.data)
			s.Require().Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
	s.Zero(s.GetS3().Len())
}

func (s *MediaServiceSuite) TestDisabledBucket() {
	params := newTestParams(&s.BaseServiceTestSuite)
	params.S3 = nil
	svc := NewMediaService(params, s.GetSentry())

	_, err := svc.Upload(s.GetContext(), s3.DocumentTypeOrphanPhoto, "orphan_1", pngHeader)
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))

	s.Nil(svc.URL(s.GetContext(), lo.ToPtr("orphan_photo/orphan_1/ph_x.png")))
	svc.Delete(s.GetContext(), lo.ToPtr("orphan_photo/orphan_1/ph_x.png"))
}
