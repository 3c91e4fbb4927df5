package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/dimitrije/eduadmin/internal/request"
	"github.com/dimitrije/eduadmin/pkg/dto"
	"github.com/dimitrije/eduadmin/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchoolLifecycleThroughDevServer(t *testing.T) {
	s := setupStack(t, map[string]string{
		"/school/get-school-list":      `{"code":0,"data":[{"id":"s-1","schoolName":"North High"}]}`,
		"/school/get-course-name-rule": `{"code":0,"data":{"schoolId":"s-1","fields":[{"name":"code","label":"Course code","rules":[{"required":true,"message":"code is required"}]}]}}`,
	})
	token := testutil.GenerateTestToken(t, "admin-1", time.Now().Add(time.Hour))

	_, err := s.console(t, "--token", token, "school", "add", "North High")
	require.NoError(t, err)

	out, err := s.console(t, "--token", token, "school", "list")
	require.NoError(t, err)
	var schools []dto.School
	require.NoError(t, json.Unmarshal([]byte(out), &schools))
	require.Len(t, schools, 1)

	_, err = s.console(t, "--token", token, "school", "email-rules", "bind", "s-1", "@north.edu")
	require.NoError(t, err)

	out, err = s.console(t, "--token", token, "school", "course-rule", "check", "s-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid":false,"errors":{"code":["code is required"]}}`, out)

	calls := s.backend.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, "/school/add-school?schoolName=North+High", calls[0].URI)
	assert.Equal(t, "/school/get-school-list", calls[1].URI)
	assert.Equal(t, "/school/bind-email-rule", calls[2].URI)
	assert.JSONEq(t, `{"schoolId":"s-1","emailRule":"@north.edu"}`, calls[2].Body)
	assert.Equal(t, "/school/get-course-name-rule?schoolId=s-1", calls[3].URI)
	for _, call := range calls {
		assert.Equal(t, testutil.AuthHeader(token), call.Header.Get("Authorization"))
	}
	assert.Empty(t, s.auth.Calls())
}

func TestCollectionContentThroughDevServer(t *testing.T) {
	s := setupStack(t, map[string]string{
		"/collection/content": `{"code":0,"data":[{"type":"pdf","collectionId":"abc","title":"Intro.pdf","createTime":"2024-09-02","pdfId":"p1","signedUrl":"https://s/p1","moveable":true,"ocred":false,"pageIndexed":false,"moduleSummarized":false,"moduleSummaryIndexed":false}]}`,
	})

	out, err := s.console(t, "collection", "content", "abc", "--rank", "BY_POPULARITY_DESC")
	require.NoError(t, err)

	var contents []dto.CollectionContentVo
	require.NoError(t, json.Unmarshal([]byte(out), &contents))
	require.Len(t, contents, 1)
	require.Equal(t, dto.ContentTypePdf, contents[0].Type)
	assert.Equal(t, "p1", contents[0].Pdf.PdfID)

	calls := s.backend.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/collection/content?collectionId=abc&collectionRankRule=BY_POPULARITY_DESC", calls[0].URI)
}

func TestBackendRejectionSurvivesProxy(t *testing.T) {
	s := setupStack(t, map[string]string{
		"/collection-manage/delete": `{"code":40301,"message":"collection is not empty"}`,
	})

	_, err := s.console(t, "collection", "delete", "c-1")

	apiErr, ok := request.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 40301, apiErr.Code)
	assert.Equal(t, "collection is not empty", apiErr.Message)
}

func TestAuthPrefixAndConsoleEndpoints(t *testing.T) {
	s := setupStack(t, nil)

	resp, err := http.Post(s.devURL+"/api/auth/login", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	authCalls := s.auth.Calls()
	require.Len(t, authCalls, 1)
	assert.Equal(t, "/login", authCalls[0].Path)

	resp, err = http.Get(s.devURL + "/__console/routes/resolve?path=/system/school")
	require.NoError(t, err)
	defer resp.Body.Close()
	var route dto.RouteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&route))
	assert.Equal(t, "SystemSchool", route.Name)

	metrics, err := http.Get(s.devURL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	body, err := io.ReadAll(metrics.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `eduadmin_devproxy_requests_total{prefix="/api/auth",status="2xx"} 1`)
}
