package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/domain"
	"github.com/Koson030/SMART-VILLAGE-MANAGEMENT-PROJECT/internal/repository"
)

// GormCalendarRepository 是 CalendarRepository 接口的 GORM 实现
type GormCalendarRepository struct {
	db *gorm.DB
}

// NewGormCalendarRepository 创建 GormCalendarRepository 实例
func NewGormCalendarRepository(db *gorm.DB) *GormCalendarRepository {
	if db == nil {
		panic("database connection cannot be nil for GormCalendarRepository")
	}
	return &GormCalendarRepository{db: db}
}

func (r *GormCalendarRepository) FindAll(ctx context.Context) ([]domain.CalendarEvent, error) {
	var list []domain.CalendarEvent
	if err := r.db.WithContext(ctx).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("gorm: find all calendar events: %w", err)
	}
	return list, nil
}

func (r *GormCalendarRepository) Save(ctx context.Context, e *domain.CalendarEvent) error {
	if err := r.db.WithContext(ctx).Save(e).Error; err != nil {
		return fmt.Errorf("gorm: save calendar event (id: %d): %w", e.ID, err)
	}
	return nil
}

// GormDocumentRepository 是 DocumentRepository 接口的 GORM 实现
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository 创建 GormDocumentRepository 实例
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	if db == nil {
		panic("database connection cannot be nil for GormDocumentRepository")
	}
	return &GormDocumentRepository{db: db}
}

func (r *GormDocumentRepository) FindByID(ctx context.Context, id uint) (*domain.Document, error) {
	var d domain.Document
	err := r.db.WithContext(ctx).First(&d, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("gorm: find document by id %d: %w", id, err)
	}
	return &d, nil
}

func (r *GormDocumentRepository) FindAll(ctx context.Context) ([]domain.Document, error) {
	var list []domain.Document
	if err := r.db.WithContext(ctx).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("gorm: find all documents: %w", err)
	}
	return list, nil
}

func (r *GormDocumentRepository) Save(ctx context.Context, d *domain.Document) error {
	if err := r.db.WithContext(ctx).Save(d).Error; err != nil {
		return fmt.Errorf("gorm: save document (id: %d): %w", d.ID, err)
	}
	return nil
}

func (r *GormDocumentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Document{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete document %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrDocumentNotFound
	}
	return nil
}

// GormSecurityRepository 是 SecurityRepository 接口的 GORM 实现
type GormSecurityRepository struct {
	db *gorm.DB
}

// NewGormSecurityRepository 创建 GormSecurityRepository 实例
func NewGormSecurityRepository(db *gorm.DB) *GormSecurityRepository {
	if db == nil {
		panic("database connection cannot be nil for GormSecurityRepository")
	}
	return &GormSecurityRepository{db: db}
}

func (r *GormSecurityRepository) FindAllVisitors(ctx context.Context) ([]domain.SecurityVisitor, error) {
	var list []domain.SecurityVisitor
	if err := r.db.WithContext(ctx).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("gorm: find all visitors: %w", err)
	}
	return list, nil
}

func (r *GormSecurityRepository) SaveVisitor(ctx context.Context, v *domain.SecurityVisitor) error {
	if err := r.db.WithContext(ctx).Save(v).Error; err != nil {
		return fmt.Errorf("gorm: save visitor (id: %d): %w", v.ID, err)
	}
	return nil
}

func (r *GormSecurityRepository) FindAllIncidents(ctx context.Context) ([]domain.SecurityIncident, error) {
	var list []domain.SecurityIncident
	if err := r.db.WithContext(ctx).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("gorm: find all incidents: %w", err)
	}
	return list, nil
}

func (r *GormSecurityRepository) SaveIncident(ctx context.Context, i *domain.SecurityIncident) error {
	if err := r.db.WithContext(ctx).Save(i).Error; err != nil {
		return fmt.Errorf("gorm: save incident (id: %d): %w", i.ID, err)
	}
	return nil
}

// GormVotingRepository 是 VotingRepository 接口的 GORM 实现
type GormVotingRepository struct {
	db *gorm.DB
}

// NewGormVotingRepository 创建 GormVotingRepository 实例
func NewGormVotingRepository(db *gorm.DB) *GormVotingRepository {
	if db == nil {
		panic("database connection cannot be nil for GormVotingRepository")
	}
	return &GormVotingRepository{db: db}
}

func (r *GormVotingRepository) FindPollByID(ctx context.Context, id uint) (*domain.VotingPoll, error) {
	var p domain.VotingPoll
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPollNotFound
		}
		return nil, fmt.Errorf("gorm: find poll by id %d: %w", id, err)
	}
	return &p, nil
}

func (r *GormVotingRepository) FindAllPolls(ctx context.Context) ([]domain.VotingPoll, error) {
	var list []domain.VotingPoll
	if err := r.db.WithContext(ctx).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("gorm: find all polls: %w", err)
	}
	return list, nil
}

func (r *GormVotingRepository) SavePoll(ctx context.Context, p *domain.VotingPoll) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("gorm: save poll (id: %d): %w", p.ID, err)
	}
	return nil
}

func (r *GormVotingRepository) FindOptionsByPoll(ctx context.Context, pollID uint) ([]domain.VotingOption, error) {
	var list []domain.VotingOption
	if err := r.db.WithContext(ctx).Where("poll_id = ?", pollID).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("gorm: find options for poll %d: %w", pollID, err)
	}
	return list, nil
}

func (r *GormVotingRepository) SaveOption(ctx context.Context, o *domain.VotingOption) error {
	if err := r.db.WithContext(ctx).Save(o).Error; err != nil {
		return fmt.Errorf("gorm: save voting option (id: %d): %w", o.ID, err)
	}
	return nil
}

func (r *GormVotingRepository) CountVotesByPoll(ctx context.Context, pollID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.VotingResult{}).
		Where("poll_id = ?", pollID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gorm: count votes for poll %d: %w", pollID, err)
	}
	return count, nil
}

func (r *GormVotingRepository) CountVotesByOption(ctx context.Context, optionID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.VotingResult{}).
		Where("option_id = ?", optionID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gorm: count votes for option %d: %w", optionID, err)
	}
	return count, nil
}

func (r *GormVotingRepository) FindAllVotes(ctx context.Context) ([]domain.VotingResult, error) {
	var list []domain.VotingResult
	if err := r.db.WithContext(ctx).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("gorm: find all votes: %w", err)
	}
	return list, nil
}

// SaveVote 实现记录一票，唯一索引冲突映射为 ErrDuplicateVote
func (r *GormVotingRepository) SaveVote(ctx context.Context, v *domain.VotingResult) error {
	err := r.db.WithContext(ctx).Create(v).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateVote
		}
		return fmt.Errorf("gorm: save vote (poll %d, user %d): %w", v.PollID, v.UserID, err)
	}
	return nil
}
