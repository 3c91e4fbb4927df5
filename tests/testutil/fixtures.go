package testutil

import (
	"fmt"
	"time"

	"github.com/dimitrije/eduadmin/pkg/dto"
	"github.com/google/uuid"
)

// Fixtures provides factory methods for creating test payloads
type Fixtures struct {
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures() *Fixtures {
	return &Fixtures{}
}

func (f *Fixtures) next() int {
	f.counter++
	return f.counter
}

// School creates a school with an id and a numbered name
func (f *Fixtures) School(opts ...SchoolOption) dto.School {
	n := f.next()
	id := uuid.NewString()
	school := dto.School{
		ID:         &id,
		SchoolName: fmt.Sprintf("Test School %d", n),
	}

	for _, opt := range opts {
		opt(&school)
	}

	return school
}

// SchoolOption configures a test school
type SchoolOption func(*dto.School)

// WithSchoolName sets the school's name
func WithSchoolName(name string) SchoolOption {
	return func(s *dto.School) {
		s.SchoolName = name
	}
}

// WithoutID clears the school id, as for a school not yet created
func WithoutID() SchoolOption {
	return func(s *dto.School) {
		s.ID = nil
	}
}

// EmailRule creates an email rule bound to schoolID
func (f *Fixtures) EmailRule(schoolID string) dto.SchoolEmailRule {
	n := f.next()
	id := uuid.NewString()
	return dto.SchoolEmailRule{
		ID:        &id,
		SchoolID:  schoolID,
		EmailRule: fmt.Sprintf("^[a-z0-9.]+@school%d\\.edu$", n),
	}
}

// Folder creates a collection entry under parentID
func (f *Fixtures) Folder(parentID string) dto.CollectionContentVo {
	n := f.next()
	return dto.NewCollectionItem(dto.CollectionContent{
		BaseCollectionContentVo: dto.BaseCollectionContentVo{
			CollectionID: uuid.NewString(),
			Title:        fmt.Sprintf("Folder %d", n),
			CreateTime:   time.Date(2024, 9, 1, 8, 0, n, 0, time.UTC).Format(time.RFC3339),
		},
		ParentCollectionID: parentID,
	})
}

// Pdf creates a pdf entry inside collectionID
func (f *Fixtures) Pdf(collectionID string) dto.CollectionContentVo {
	n := f.next()
	return dto.NewPdfItem(dto.PdfContent{
		BaseCollectionContentVo: dto.BaseCollectionContentVo{
			CollectionID: collectionID,
			Title:        fmt.Sprintf("Lecture %d.pdf", n),
			CreateTime:   time.Date(2024, 9, 1, 9, 0, n, 0, time.UTC).Format(time.RFC3339),
		},
		PdfID:     uuid.NewString(),
		SignedURL: fmt.Sprintf("https://files.example.com/%d?sig=abc", n),
		Moveable:  true,
		Ocred:     true,
	})
}

// CourseForm creates a course-name form with a required, patterned code
// field and a length-limited title field
func (f *Fixtures) CourseForm(schoolID string) dto.DynamicCourseForm {
	minLen, maxLen := 2, 40
	return dto.DynamicCourseForm{
		SchoolID: schoolID,
		Fields: []dto.FormField{
			{
				Name:        "code",
				Label:       "Course code",
				Placeholder: "CS101",
				Rules: []dto.Rule{
					{Message: "course code is required", Required: true},
					{Message: "course code must look like CS101", Pattern: `^[A-Z]{2,4}[0-9]{3}$`},
				},
			},
			{
				Name:        "title",
				Label:       "Course title",
				Placeholder: "Introduction to Computing",
				Rules: []dto.Rule{
					{Message: "title must be 2-40 characters", Min: &minLen, Max: &maxLen},
				},
			},
		},
	}
}
