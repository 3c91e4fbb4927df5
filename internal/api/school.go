package api

import (
	"context"
	"net/url"

	"github.com/dimitrije/eduadmin/internal/request"
	"github.com/dimitrije/eduadmin/pkg/dto"
)

const (
	pathSchoolAdd              = "/school/add-school"
	pathSchoolEditName         = "/school/edit-school-name"
	pathSchoolList             = "/school/get-school-list"
	pathEmailRuleBind          = "/school/bind-email-rule"
	pathEmailRuleEdit          = "/school/edit-email-rule"
	pathEmailRuleDelete        = "/school/delete-email-rule"
	pathEmailRuleList          = "/school/get-email-rule-list"
	pathCourseNameRuleBind     = "/school/bind-course-name-rule"
	pathCourseNameRuleUpdate   = "/school/update-course-name-rule"
	pathCourseNameRuleGet      = "/school/get-course-name-rule"
	pathSchoolRootCollectionID = "/school/get-school-root-collection-id"
)

type SchoolAPI struct {
	client request.Requester
}

func NewSchoolAPI(client request.Requester) *SchoolAPI {
	return &SchoolAPI{client: client}
}

func (a *SchoolAPI) AddSchool(ctx context.Context, schoolName string) error {
	params := url.Values{}
	params.Set("schoolName", schoolName)
	return a.client.Post(ctx, pathSchoolAdd, nil, params, nil)
}

func (a *SchoolAPI) EditSchoolName(ctx context.Context, school dto.School) error {
	return a.client.Post(ctx, pathSchoolEditName, school, nil, nil)
}

func (a *SchoolAPI) GetSchoolList(ctx context.Context) ([]dto.School, error) {
	var schools []dto.School
	if err := a.client.Get(ctx, pathSchoolList, nil, &schools); err != nil {
		return nil, err
	}
	return schools, nil
}

func (a *SchoolAPI) BindEmailRule(ctx context.Context, rule dto.SchoolEmailRule) error {
	return a.client.Post(ctx, pathEmailRuleBind, rule, nil, nil)
}

func (a *SchoolAPI) EditEmailRule(ctx context.Context, rule dto.SchoolEmailRule) error {
	return a.client.Post(ctx, pathEmailRuleEdit, rule, nil, nil)
}

func (a *SchoolAPI) DeleteEmailRule(ctx context.Context, schoolEmailRuleID string) error {
	params := url.Values{}
	params.Set("schoolEmailRuleId", schoolEmailRuleID)
	return a.client.Post(ctx, pathEmailRuleDelete, nil, params, nil)
}

func (a *SchoolAPI) GetEmailRuleList(ctx context.Context, schoolID string) ([]dto.SchoolEmailRule, error) {
	params := url.Values{}
	params.Set("schoolId", schoolID)

	var rules []dto.SchoolEmailRule
	if err := a.client.Get(ctx, pathEmailRuleList, params, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// BindCourseNameRule attaches a course-name form to a school for the first
// time; UpdateCourseNameRule replaces an existing one.
func (a *SchoolAPI) BindCourseNameRule(ctx context.Context, form dto.DynamicCourseForm) error {
	return a.client.Post(ctx, pathCourseNameRuleBind, form, nil, nil)
}

func (a *SchoolAPI) UpdateCourseNameRule(ctx context.Context, form dto.DynamicCourseForm) error {
	return a.client.Post(ctx, pathCourseNameRuleUpdate, form, nil, nil)
}

// GetCourseNameRule returns nil without error when the school has no form.
func (a *SchoolAPI) GetCourseNameRule(ctx context.Context, schoolID string) (*dto.DynamicCourseForm, error) {
	params := url.Values{}
	params.Set("schoolId", schoolID)

	var form *dto.DynamicCourseForm
	if err := a.client.Get(ctx, pathCourseNameRuleGet, params, &form); err != nil {
		return nil, err
	}
	return form, nil
}

func (a *SchoolAPI) GetSchoolRootCollectionID(ctx context.Context, schoolID string) (string, error) {
	params := url.Values{}
	params.Set("schoolId", schoolID)

	var collectionID string
	if err := a.client.Get(ctx, pathSchoolRootCollectionID, params, &collectionID); err != nil {
		return "", err
	}
	return collectionID, nil
}
