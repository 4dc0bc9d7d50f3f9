package service

import (
	"context"
	"fmt"

	"github.com/adresponse/adresponse/internal/domain"
	"github.com/adresponse/adresponse/internal/telemetry"
)

// StorageClientInterface defines the object storage operations needed
// for attachment files
type StorageClientInterface interface {
	GenerateUploadURL(ctx context.Context, key string, contentType string) (string, error)
	GenerateDownloadURL(ctx context.Context, key string) (string, error)
	DeleteObject(ctx context.Context, key string) error
}

// AttachmentService manages RFP attachment metadata and the presigned
// upload/download flows. Storage may be nil, in which case the
// presigned flows fail with an unavailable error while metadata reads
// keep working.
type AttachmentService struct {
	rfpRepo RFPRepositoryInterface
	storage StorageClientInterface
	clock   Clock
}

// NewAttachmentService creates a new AttachmentService instance
func NewAttachmentService(rfpRepo RFPRepositoryInterface, storage StorageClientInterface) *AttachmentService {
	return &AttachmentService{rfpRepo: rfpRepo, storage: storage, clock: DefaultClock}
}

// NewAttachmentServiceWithClock creates a new AttachmentService with
// a custom clock (for testing)
func NewAttachmentServiceWithClock(rfpRepo RFPRepositoryInterface, storage StorageClientInterface, clock Clock) *AttachmentService {
	return &AttachmentService{rfpRepo: rfpRepo, storage: storage, clock: clock}
}

// AddAttachmentInput represents the input for registering an attachment
type AddAttachmentInput struct {
	RFPID       int
	Filename    string
	Type        string
	Size        string
	ContentType string
}

// AddAttachmentResult is the registered attachment plus its presigned
// upload URL
type AddAttachmentResult struct {
	Attachment domain.Attachment
	UploadURL  string
}

// AddAttachment registers attachment metadata on the RFP and returns
// a presigned upload URL for the file itself.
func (s *AttachmentService) AddAttachment(ctx context.Context, input AddAttachmentInput) (*AddAttachmentResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "AttachmentService.AddAttachment", telemetry.SpanAttributes{
		RFPID:     input.RFPID,
		Operation: "add-attachment",
	})
	defer span.End()

	if s.storage == nil {
		return nil, domain.ErrStorageNotConfigured
	}

	if input.Filename == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "filename is required")
	}

	rfp, err := s.rfpRepo.GetByID(ctx, input.RFPID)
	if err != nil {
		return nil, err
	}

	attachment := domain.Attachment{
		ID:         nextAttachmentID(rfp.Attachments),
		Filename:   input.Filename,
		Type:       input.Type,
		Size:       input.Size,
		UploadedAt: s.clock(),
	}
	attachment.StorageKey = attachmentKey(rfp.ID, attachment.ID, attachment.Filename)

	uploadURL, err := s.storage.GenerateUploadURL(ctx, attachment.StorageKey, input.ContentType)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to generate upload url", err)
	}

	rfp.Attachments = append(rfp.Attachments, attachment)
	rfp.UpdatedAt = s.clock()
	if err := s.rfpRepo.Update(ctx, rfp); err != nil {
		return nil, err
	}

	return &AddAttachmentResult{Attachment: attachment, UploadURL: uploadURL}, nil
}

// DownloadURL returns a presigned download URL for an attachment
func (s *AttachmentService) DownloadURL(ctx context.Context, rfpID, attachmentID int) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "AttachmentService.DownloadURL", telemetry.SpanAttributes{
		RFPID:     rfpID,
		Operation: "download-attachment",
	})
	defer span.End()

	if s.storage == nil {
		return "", domain.ErrStorageNotConfigured
	}

	rfp, err := s.rfpRepo.GetByID(ctx, rfpID)
	if err != nil {
		return "", err
	}

	for _, att := range rfp.Attachments {
		if att.ID == attachmentID {
			if att.StorageKey == "" {
				return "", domain.ErrAttachmentNotFound
			}
			url, err := s.storage.GenerateDownloadURL(ctx, att.StorageKey)
			if err != nil {
				return "", domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to generate download url", err)
			}
			return url, nil
		}
	}

	return "", domain.ErrAttachmentNotFound
}

func nextAttachmentID(attachments []domain.Attachment) int {
	next := 1
	for _, att := range attachments {
		if att.ID >= next {
			next = att.ID + 1
		}
	}
	return next
}

func attachmentKey(rfpID, attachmentID int, filename string) string {
	return fmt.Sprintf("rfps/%d/attachments/%d/%s", rfpID, attachmentID, filename)
}
