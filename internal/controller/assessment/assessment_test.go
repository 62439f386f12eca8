package assessment

import (
	"net/http"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentflow-backend/internal/model"
	"talentflow-backend/internal/store"
	"talentflow-backend/internal/testutil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func assessmentRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	st := store.New(nil, nil)
	ac := NewController(st)
	r := gin.Default()
	r.GET("/assessments", ac.GetAll)
	r.GET("/assessments/:jobId", ac.GetByJob)
	r.PUT("/assessments/:jobId", ac.Upsert)
	r.POST("/assessments/:jobId/submit", ac.Submit)
	return r, st
}

func sectionsBody(questionCounts ...int) []gin.H {
	sections := make([]gin.H, 0, len(questionCounts))
	for s, n := range questionCounts {
		questions := make([]gin.H, 0, n)
		for q := 0; q < n; q++ {
			questions = append(questions, gin.H{
				"text": "A question",
				"type": model.QuestionShortText,
			})
		}
		sections = append(sections, gin.H{
			"title":     string(rune('A' + s)),
			"questions": questions,
		})
	}
	return sections
}

func TestGetByJob_missingIsNull(t *testing.T) {
	r, _ := assessmentRouter(t)

	w, body := testutil.MakeJSONRequest(nil, r, "/assessments/j7", http.MethodGet)

	require.Equal(t, http.StatusOK, w.Code)
	_, present := body["assessment"]
	assert.True(t, present)
	assert.Nil(t, body["assessment"])
}

func TestUpsert_createThenReplaceKeepsOneRecord(t *testing.T) {
	r, st := assessmentRouter(t)

	w, body := testutil.MakeJSONRequest(gin.H{
		"title":    "Screening Quiz",
		"sections": sectionsBody(5),
	}, r, "/assessments/j1", http.MethodPut)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "assessment-j1", body["id"])
	assert.Equal(t, "j1", body["jobId"])
	assert.Equal(t, float64(5), body["totalQuestions"])

	w, body = testutil.MakeJSONRequest(gin.H{
		"title":    "Screening Quiz v2",
		"sections": sectionsBody(5, 3),
	}, r, "/assessments/j1", http.MethodPut)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "assessment-j1", body["id"])
	assert.Equal(t, float64(8), body["totalQuestions"])
	assert.Len(t, st.Assessments(), 1)
}

func TestUpsert_ignoresClientTotal(t *testing.T) {
	r, _ := assessmentRouter(t)

	w, body := testutil.MakeJSONRequest(gin.H{
		"title":          "Quiz",
		"sections":       sectionsBody(2),
		"totalQuestions": 42,
	}, r, "/assessments/j3", http.MethodPut)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["totalQuestions"])
}

func TestGetByJob_returnsSavedRecord(t *testing.T) {
	r, st := assessmentRouter(t)
	st.UpsertAssessment("j2", model.Assessment{
		Title:    "Backend Quiz",
		Sections: []model.Section{{Title: "One", Questions: make([]model.Question, 3)}},
	})

	w, body := testutil.MakeJSONRequest(nil, r, "/assessments/j2", http.MethodGet)

	require.Equal(t, http.StatusOK, w.Code)
	rec := body["assessment"].(map[string]interface{})
	assert.Equal(t, "Backend Quiz", rec["title"])
	assert.Equal(t, float64(3), rec["totalQuestions"])
}

func TestGetAll(t *testing.T) {
	r, st := assessmentRouter(t)
	st.UpsertAssessment("j1", model.Assessment{Title: "One"})
	st.UpsertAssessment("j2", model.Assessment{Title: "Two"})

	w, body := testutil.MakeJSONRequest(nil, r, "/assessments", http.MethodGet)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["assessments"], 2)
}

func TestSubmit_acknowledgesResponses(t *testing.T) {
	r, _ := assessmentRouter(t)

	w, body := testutil.MakeJSONRequest(gin.H{
		"responses": gin.H{"s0q0": "Yes", "s0q1": []string{"A", "B"}},
	}, r, "/assessments/j1/submit", http.MethodPost)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	responses := body["responses"].(map[string]interface{})
	assert.Equal(t, "Yes", responses["s0q0"])
}

func TestSubmit_requiresResponses(t *testing.T) {
	r, _ := assessmentRouter(t)

	w, _ := testutil.MakeJSONRequest(gin.H{}, r, "/assessments/j1/submit", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
