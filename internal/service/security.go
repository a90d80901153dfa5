package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/dto"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository"
)

// SecurityService 负责访客登记与安全事件上报，两者都通知管理员房间。
type SecurityService struct {
	securityRepo repository.SecurityRepository
	userRepo     repository.UserRepository
	publisher    Publisher
}

// NewSecurityService 创建 SecurityService 实例。
func NewSecurityService(securityRepo repository.SecurityRepository, userRepo repository.UserRepository, publisher Publisher) *SecurityService {
	if securityRepo == nil {
		panic("SecurityRepository cannot be nil for SecurityService")
	}
	if userRepo == nil {
		panic("UserRepository cannot be nil for SecurityService")
	}
	if publisher == nil {
		panic("Publisher cannot be nil for SecurityService")
	}
	return &SecurityService{securityRepo: securityRepo, userRepo: userRepo, publisher: publisher}
}

// ListVisitors 返回全部访客登记。
func (s *SecurityService) ListVisitors(ctx context.Context) ([]domain.SecurityVisitor, error) {
	visitors, err := s.securityRepo.FindAllVisitors(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list visitors")
		return nil, ErrInternalServer
	}
	return visitors, nil
}

// RegisterVisitorInput 是访客登记的输入数据。
type RegisterVisitorInput struct {
	UserID    uint
	Name      string
	Phone     string
	VisitDate time.Time
	VisitTime string
	Purpose   string
}

// RegisterVisitor 登记访客。提交成功后向 admins 房间发布 new_visitor_registered。
func (s *SecurityService) RegisterVisitor(ctx context.Context, in RegisterVisitorInput) (*domain.SecurityVisitor, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": in.UserID, "visitor_name": in.Name})

	if in.Name == "" {
		return nil, ErrInvalidInput
	}

	visitor := &domain.SecurityVisitor{
		UserID:    in.UserID,
		Name:      in.Name,
		Phone:     in.Phone,
		VisitDate: in.VisitDate,
		VisitTime: in.VisitTime,
		Purpose:   in.Purpose,
	}

	if err := s.securityRepo.SaveVisitor(ctx, visitor); err != nil {
		logCtx.WithError(err).Error("Failed to save visitor")
		return nil, ErrInternalServer
	}

	logCtx.WithField("visitor_id", visitor.ID).Info("Visitor registered")
	s.publisher.Publish(dto.RoomAdmins, dto.EventNewVisitorRegistered, dto.VisitorPayload{
		VisitorID: visitor.ID,
		Name:      visitor.Name,
		VisitDate: visitor.VisitDate.Format("2006-01-02"),
		UserID:    visitor.UserID,
		UserName:  s.resolveUserName(ctx, visitor.UserID),
	})
	return visitor, nil
}

// ListIncidents 返回全部安全事件。
func (s *SecurityService) ListIncidents(ctx context.Context) ([]domain.SecurityIncident, error) {
	incidents, err := s.securityRepo.FindAllIncidents(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list incidents")
		return nil, ErrInternalServer
	}
	return incidents, nil
}

// ReportIncidentInput 是安全事件上报的输入数据。
type ReportIncidentInput struct {
	UserID        uint
	Description   string
	EvidencePaths string
}

// ReportIncident 上报安全事件。提交成功后向 admins 房间发布 new_incident_reported。
func (s *SecurityService) ReportIncident(ctx context.Context, in ReportIncidentInput) (*domain.SecurityIncident, error) {
	logCtx := logrus.WithField("user_id", in.UserID)

	if in.Description == "" {
		return nil, ErrInvalidInput
	}

	incident := &domain.SecurityIncident{
		UserID:        in.UserID,
		Description:   in.Description,
		ReportedDate:  time.Now(),
		EvidencePaths: in.EvidencePaths,
	}

	if err := s.securityRepo.SaveIncident(ctx, incident); err != nil {
		logCtx.WithError(err).Error("Failed to save incident")
		return nil, ErrInternalServer
	}

	logCtx.WithField("incident_id", incident.ID).Info("Incident reported")
	s.publisher.Publish(dto.RoomAdmins, dto.EventNewIncidentReported, dto.IncidentPayload{
		IncidentID:   incident.ID,
		UserID:       incident.UserID,
		UserName:     s.resolveUserName(ctx, incident.UserID),
		Description:  incident.Description,
		ReportedDate: incident.ReportedDate.Format(time.RFC3339),
	})
	return incident, nil
}

func (s *SecurityService) resolveUserName(ctx context.Context, userID uint) string {
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil && user != nil {
		return user.Name
	}
	return dto.UnknownUser
}
