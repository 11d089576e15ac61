package usecases

import (
	"context"

	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	"github.com/chroma-excellence/chromaqa/internal/domain/school"
	"github.com/chroma-excellence/chromaqa/internal/domain/shared/events"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type mockReportRepository struct {
	SaveFunc          func(ctx context.Context, r *report.Report) error
	UpdateFunc        func(ctx context.Context, r *report.Report, expectedVersion int) error
	DeleteFunc        func(ctx context.Context, reportID uint) error
	GetByIDFunc       func(ctx context.Context, reportID uint) (*report.Report, error)
	ListFunc          func(ctx context.Context, filter report.Filter) ([]*report.Report, int64, error)
	CountByStatusFunc func(ctx context.Context) (map[string]int64, error)
}

func (m *mockReportRepository) Save(ctx context.Context, r *report.Report) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, r)
	}
	return nil
}

func (m *mockReportRepository) Update(ctx context.Context, r *report.Report, expectedVersion int) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, r, expectedVersion)
	}
	return nil
}

func (m *mockReportRepository) Delete(ctx context.Context, reportID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, reportID)
	}
	return nil
}

func (m *mockReportRepository) GetByID(ctx context.Context, reportID uint) (*report.Report, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, reportID)
	}
	return nil, nil
}

func (m *mockReportRepository) List(ctx context.Context, filter report.Filter) ([]*report.Report, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockReportRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx)
	}
	return map[string]int64{}, nil
}

type mockTemplateRepository struct {
	GetByVersionFunc    func(ctx context.Context, version string) (*checklist.Template, error)
	GetLatestByTypeFunc func(ctx context.Context, reportType string) (*checklist.Template, error)
	SaveFunc            func(ctx context.Context, template *checklist.Template) error
	ListFunc            func(ctx context.Context) ([]*checklist.Template, error)
}

func (m *mockTemplateRepository) GetByVersion(ctx context.Context, version string) (*checklist.Template, error) {
	if m.GetByVersionFunc != nil {
		return m.GetByVersionFunc(ctx, version)
	}
	return nil, nil
}

func (m *mockTemplateRepository) GetLatestByType(ctx context.Context, reportType string) (*checklist.Template, error) {
	if m.GetLatestByTypeFunc != nil {
		return m.GetLatestByTypeFunc(ctx, reportType)
	}
	return nil, nil
}

func (m *mockTemplateRepository) Save(ctx context.Context, template *checklist.Template) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, template)
	}
	return nil
}

func (m *mockTemplateRepository) List(ctx context.Context) ([]*checklist.Template, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

type mockSchoolRepository struct {
	SaveFunc    func(ctx context.Context, s *school.School) error
	UpdateFunc  func(ctx context.Context, s *school.School) error
	DeleteFunc  func(ctx context.Context, schoolID uint) error
	GetByIDFunc func(ctx context.Context, schoolID uint) (*school.School, error)
	ListFunc    func(ctx context.Context, filter school.Filter) ([]*school.School, int64, error)
}

func (m *mockSchoolRepository) Save(ctx context.Context, s *school.School) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, s)
	}
	return nil
}

func (m *mockSchoolRepository) Update(ctx context.Context, s *school.School) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, s)
	}
	return nil
}

func (m *mockSchoolRepository) Delete(ctx context.Context, schoolID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, schoolID)
	}
	return nil
}

func (m *mockSchoolRepository) GetByID(ctx context.Context, schoolID uint) (*school.School, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, schoolID)
	}
	return nil, nil
}

func (m *mockSchoolRepository) List(ctx context.Context, filter school.Filter) ([]*school.School, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockPhotoRepository struct {
	SaveFunc             func(ctx context.Context, photo *report.Photo) error
	GetByReportIDFunc    func(ctx context.Context, reportID uint) ([]*report.Photo, error)
	DeleteFunc           func(ctx context.Context, photoID uint) error
	DeleteByReportIDFunc func(ctx context.Context, reportID uint) error
}

func (m *mockPhotoRepository) Save(ctx context.Context, photo *report.Photo) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, photo)
	}
	return nil
}

func (m *mockPhotoRepository) GetByReportID(ctx context.Context, reportID uint) ([]*report.Photo, error) {
	if m.GetByReportIDFunc != nil {
		return m.GetByReportIDFunc(ctx, reportID)
	}
	return nil, nil
}

func (m *mockPhotoRepository) Delete(ctx context.Context, photoID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, photoID)
	}
	return nil
}

func (m *mockPhotoRepository) DeleteByReportID(ctx context.Context, reportID uint) error {
	if m.DeleteByReportIDFunc != nil {
		return m.DeleteByReportIDFunc(ctx, reportID)
	}
	return nil
}

type mockPhotoFileStore struct {
	RemoveFunc func(ctx context.Context, storagePath string) error
	removed    []string
}

func (m *mockPhotoFileStore) Remove(ctx context.Context, storagePath string) error {
	m.removed = append(m.removed, storagePath)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, storagePath)
	}
	return nil
}

type mockSummaryRepository struct {
	SaveFunc                 func(ctx context.Context, summary *report.Summary) error
	GetCurrentByReportIDFunc func(ctx context.Context, reportID uint) (*report.Summary, error)
	DeleteByReportIDFunc     func(ctx context.Context, reportID uint) error
}

func (m *mockSummaryRepository) Save(ctx context.Context, summary *report.Summary) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, summary)
	}
	return nil
}

func (m *mockSummaryRepository) GetCurrentByReportID(ctx context.Context, reportID uint) (*report.Summary, error) {
	if m.GetCurrentByReportIDFunc != nil {
		return m.GetCurrentByReportIDFunc(ctx, reportID)
	}
	return nil, nil
}

func (m *mockSummaryRepository) DeleteByReportID(ctx context.Context, reportID uint) error {
	if m.DeleteByReportIDFunc != nil {
		return m.DeleteByReportIDFunc(ctx, reportID)
	}
	return nil
}

type mockPublisher struct {
	PublishFunc func(event events.DomainEvent) error
	published   []events.DomainEvent
}

func (m *mockPublisher) Publish(event events.DomainEvent) error {
	m.published = append(m.published, event)
	if m.PublishFunc != nil {
		return m.PublishFunc(event)
	}
	return nil
}

func (m *mockPublisher) PublishAll(evts []events.DomainEvent) error {
	for _, e := range evts {
		if err := m.Publish(e); err != nil {
			return err
		}
	}
	return nil
}

type mockGenerator struct {
	GenerateFunc func(ctx context.Context, r *report.Report, template *checklist.Template) (string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, r *report.Report, template *checklist.Template) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, r, template)
	}
	return "", nil
}

type mockRenderer struct {
	RenderHTMLFunc func(markdown string) (string, error)
}

func (m *mockRenderer) RenderHTML(markdown string) (string, error) {
	if m.RenderHTMLFunc != nil {
		return m.RenderHTMLFunc(markdown)
	}
	return markdown, nil
}

type nopLogger struct{}

func (n nopLogger) With(args ...any) logger.Interface               { return n }
func (nopLogger) Debugw(msg string, keysAndValues ...interface{})   {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})    {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})    {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{})   {}
func (nopLogger) Fatalw(msg string, keysAndValues ...interface{})   {}
