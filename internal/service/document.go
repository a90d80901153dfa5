package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository"
)

// DocumentService 负责公开文件记录的维护。
// 文件下载走静态路由，这里只管元数据。
type DocumentService struct {
	docRepo repository.DocumentRepository
}

// NewDocumentService 创建 DocumentService 实例。
func NewDocumentService(docRepo repository.DocumentRepository) *DocumentService {
	if docRepo == nil {
		panic("DocumentRepository cannot be nil for DocumentService")
	}
	return &DocumentService{docRepo: docRepo}
}

// List 返回全部文件记录。
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.docRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list documents")
		return nil, ErrInternalServer
	}
	return docs, nil
}

// CreateDocumentInput 是登记文件的输入数据。
type CreateDocumentInput struct {
	DocumentName     string
	FilePath         string
	UploadedByUserID uint
	Category         string
}

// Create 登记一份新上传的文件。
func (s *DocumentService) Create(ctx context.Context, in CreateDocumentInput) (*domain.Document, error) {
	logCtx := logrus.WithField("document_name", in.DocumentName)

	if in.DocumentName == "" || in.FilePath == "" {
		return nil, ErrInvalidInput
	}

	doc := &domain.Document{
		DocumentName:     in.DocumentName,
		FilePath:         in.FilePath,
		UploadedByUserID: in.UploadedByUserID,
		UploadDate:       time.Now(),
		Category:         in.Category,
	}

	if err := s.docRepo.Save(ctx, doc); err != nil {
		logCtx.WithError(err).Error("Failed to save document")
		return nil, ErrInternalServer
	}

	logCtx.WithField("document_id", doc.ID).Info("Document created")
	return doc, nil
}

// Delete 删除文件记录。
func (s *DocumentService) Delete(ctx context.Context, id uint) error {
	if err := s.docRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return ErrDocumentNotFound
		}
		logrus.WithError(err).WithField("document_id", id).Error("Failed to delete document")
		return ErrInternalServer
	}
	logrus.WithField("document_id", id).Info("Document deleted")
	return nil
}
