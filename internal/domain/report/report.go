// Package report holds the inspection report aggregate and its lifecycle
// rules. Capability checks happen at the application boundary; this
// package enforces the state machine, ownership-sensitive editing, and
// the submission precondition.
package report

import (
	"fmt"
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	vo "github.com/chroma-excellence/chromaqa/internal/domain/report/valueobjects"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
)

type Report struct {
	id              uint
	schoolID        uint
	authorID        uint
	reportType      string
	templateVersion string
	inspectionDate  time.Time
	status          vo.ReportStatus
	responses       checklist.ResponseSet
	closingNotes    string
	version         int
	createdAt       time.Time
	updatedAt       time.Time
}

func NewReport(
	schoolID uint,
	authorID uint,
	reportType string,
	templateVersion string,
	inspectionDate time.Time,
	now time.Time,
) (*Report, error) {
	if schoolID == 0 {
		return nil, fmt.Errorf("school ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if reportType == "" {
		return nil, fmt.Errorf("report type is required")
	}
	if templateVersion == "" {
		return nil, fmt.Errorf("template version is required")
	}

	return &Report{
		schoolID:        schoolID,
		authorID:        authorID,
		reportType:      reportType,
		templateVersion: templateVersion,
		inspectionDate:  inspectionDate,
		status:          vo.StatusDraft,
		responses:       checklist.ResponseSet{},
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructReport(
	id uint,
	schoolID uint,
	authorID uint,
	reportType string,
	templateVersion string,
	inspectionDate time.Time,
	status vo.ReportStatus,
	responses checklist.ResponseSet,
	closingNotes string,
	version int,
	createdAt, updatedAt time.Time,
) (*Report, error) {
	if id == 0 {
		return nil, fmt.Errorf("report ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if responses == nil {
		responses = checklist.ResponseSet{}
	}

	return &Report{
		id:              id,
		schoolID:        schoolID,
		authorID:        authorID,
		reportType:      reportType,
		templateVersion: templateVersion,
		inspectionDate:  inspectionDate,
		status:          status,
		responses:       responses,
		closingNotes:    closingNotes,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (r *Report) ID() uint {
	return r.id
}

func (r *Report) SchoolID() uint {
	return r.schoolID
}

func (r *Report) AuthorID() uint {
	return r.authorID
}

func (r *Report) ReportType() string {
	return r.reportType
}

func (r *Report) TemplateVersion() string {
	return r.templateVersion
}

func (r *Report) InspectionDate() time.Time {
	return r.inspectionDate
}

func (r *Report) Status() vo.ReportStatus {
	return r.status
}

// Responses returns a copy of the response set.
func (r *Report) Responses() checklist.ResponseSet {
	out := make(checklist.ResponseSet, len(r.responses))
	for k, v := range r.responses {
		out[k] = v
	}
	return out
}

func (r *Report) ClosingNotes() string {
	return r.closingNotes
}

func (r *Report) Version() int {
	return r.version
}

func (r *Report) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Report) UpdatedAt() time.Time {
	return r.updatedAt
}

func (r *Report) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("report ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("report ID cannot be zero")
	}
	r.id = id
	return nil
}

// IsOwnedBy reports whether userID authored this report.
func (r *Report) IsOwnedBy(userID uint) bool {
	return r.authorID == userID
}

func (r *Report) touch(now time.Time) {
	r.updatedAt = now
	r.version++
}

// CanBeEdited reports whether response content may change: only in draft
// or rejected, and only by the owning author or an edit-all actor.
func (r *Report) CanBeEdited(actorID uint, editAll bool) bool {
	if !r.status.IsEditable() {
		return false
	}
	return editAll || r.IsOwnedBy(actorID)
}

// UpdateResponses replaces the response set. The caller has already
// passed the capability gate; this enforces the editable-state rule.
func (r *Report) UpdateResponses(responses checklist.ResponseSet, actorID uint, editAll bool, now time.Time) error {
	if !r.CanBeEdited(actorID, editAll) {
		return errors.NewInvalidTransitionError(r.id, r.status.String(), r.status.String()).
			WithDetail("reason", "report is not editable in its current state")
	}

	for key, resp := range responses {
		if resp.Rating != "" && !resp.Rating.IsValid() {
			return errors.NewValidationError(fmt.Sprintf("invalid rating %q for item %s", resp.Rating, key))
		}
	}

	copied := make(checklist.ResponseSet, len(responses))
	for k, v := range responses {
		copied[k] = v
	}
	r.responses = copied
	r.touch(now)
	return nil
}

// SetClosingNotes updates the closing notes under the same editing rules
// as responses.
func (r *Report) SetClosingNotes(notes string, actorID uint, editAll bool, now time.Time) error {
	if !r.CanBeEdited(actorID, editAll) {
		return errors.NewInvalidTransitionError(r.id, r.status.String(), r.status.String()).
			WithDetail("reason", "report is not editable in its current state")
	}
	r.closingNotes = notes
	r.touch(now)
	return nil
}

// Submit moves the report from draft to submitted. Every mandatory
// section of the template must be 100% complete; the failure names the
// first incomplete one.
func (r *Report) Submit(template *checklist.Template, now time.Time) error {
	if err := r.ensureTransition(vo.StatusSubmitted); err != nil {
		return err
	}

	if incomplete := checklist.FirstIncompleteSection(template, r.responses); incomplete != nil {
		return errors.NewIncompleteReportError(r.id, incomplete.Key, incomplete.Title)
	}

	r.status = vo.StatusSubmitted
	r.touch(now)
	return nil
}

// StartReview moves the report from submitted to under review.
func (r *Report) StartReview(now time.Time) error {
	return r.transitionTo(vo.StatusUnderReview, now)
}

// Approve finalizes the report. Approved is terminal for content edits.
func (r *Report) Approve(now time.Time) error {
	return r.transitionTo(vo.StatusApproved, now)
}

// Reject sends the report back for rework.
func (r *Report) Reject(now time.Time) error {
	return r.transitionTo(vo.StatusRejected, now)
}

// Rework reopens a rejected report as a draft for the author.
func (r *Report) Rework(now time.Time) error {
	return r.transitionTo(vo.StatusDraft, now)
}

// CanBeDeleted reports whether deletion is allowed: approved reports are
// only deletable by an actor who also manages settings.
func (r *Report) CanBeDeleted(manageSettings bool) bool {
	if r.status.IsApproved() {
		return manageSettings
	}
	return true
}

// CanBeViewedBy reports whether the actor may read this report.
func (r *Report) CanBeViewedBy(actorID uint, viewAll, viewOwn bool) bool {
	if viewAll {
		return true
	}
	return viewOwn && r.IsOwnedBy(actorID)
}

// Progress evaluates the report's completion against its template.
func (r *Report) Progress(template *checklist.Template) checklist.Progress {
	return checklist.TemplateProgress(template, r.responses)
}

// Score evaluates the weighted score against the template.
func (r *Report) Score(template *checklist.Template) float64 {
	return checklist.Score(template, r.responses)
}

func (r *Report) ensureTransition(to vo.ReportStatus) error {
	if !r.status.CanTransitionTo(to) {
		return errors.NewInvalidTransitionError(r.id, r.status.String(), to.String())
	}
	return nil
}

func (r *Report) transitionTo(to vo.ReportStatus, now time.Time) error {
	if err := r.ensureTransition(to); err != nil {
		return err
	}
	r.status = to
	r.touch(now)
	return nil
}
