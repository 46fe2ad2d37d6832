package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sitehub-ops/checklist-api/internal/constants"
	"github.com/sitehub-ops/checklist-api/internal/dto"
	"github.com/sitehub-ops/checklist-api/internal/middleware"
	"github.com/sitehub-ops/checklist-api/internal/models"
	"github.com/sitehub-ops/checklist-api/internal/repository"
	"github.com/sitehub-ops/checklist-api/internal/roster"
	"github.com/sitehub-ops/checklist-api/internal/services"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testDate = "2026-09-01"

// DayHandlerTestSuite exercises the day routes end to end: session
// login, template creation, toggling, approval, and the report export.
type DayHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *DayHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.db.AutoMigrate(&models.DayRecord{}))

	clock := func() time.Time {
		return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	}

	dayRepo := repository.NewDayRepository(suite.db)
	authService := services.NewAuthService(roster.Default())
	dayService := services.NewDayService(dayRepo, services.DefaultTemplate(), "AG WS", clock)

	authHandler := NewAuthHandler(authService)
	dayHandler := NewDayHandler(dayService)
	reportHandler := NewReportHandler(dayService)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	store := cookie.NewStore([]byte("secret"))
	suite.router.Use(sessions.Sessions(constants.SessionCookieName, store))

	api := suite.router.Group("/api")
	api.POST("/auth/login", authHandler.Login)
	days := api.Group("/days/:date")
	days.Use(middleware.RequireAuth(authService), middleware.ValidateDate())
	days.GET("", dayHandler.GetDay)
	days.GET("/log", dayHandler.GetLog)
	days.POST("/tasks", dayHandler.AddAdHocTask)
	days.POST("/tasks/:task_id/toggle", dayHandler.ToggleTask)
	days.POST("/approve", dayHandler.Approve)
	days.GET("/report", middleware.RequireLead(), reportHandler.ExportDay)
}

// TearDownTest runs after each test
func (suite *DayHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// loginAs authenticates a default-roster member and returns the session cookies
func (suite *DayHandlerTestSuite) loginAs(identifier, pin string) []*http.Cookie {
	body, err := json.Marshal(map[string]string{"identifier": identifier, "pin": pin})
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Require().Equal(http.StatusOK, w.Code)

	return w.Result().Cookies()
}

func (suite *DayHandlerTestSuite) do(method, url string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *DayHandlerTestSuite) getDay(cookies []*http.Cookie) dto.DayDTO {
	w := suite.do(http.MethodGet, "/api/days/"+testDate, nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	var day dto.DayDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &day))
	return day
}

func (suite *DayHandlerTestSuite) toggle(taskID string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	return suite.do(http.MethodPost, fmt.Sprintf("/api/days/%s/tasks/%s/toggle", testDate, taskID), nil, cookies)
}

func (suite *DayHandlerTestSuite) TestGetDay_CreatesFromTemplate() {
	cookies := suite.loginAs("oliver", "1111")

	day := suite.getDay(cookies)
	suite.Equal(testDate, day.Date)
	suite.Len(day.Tasks, 10)
	suite.False(day.Approved)
	suite.False(day.AllDone)

	// Second read returns the stored day, same task ids
	again := suite.getDay(cookies)
	suite.Equal(day.Tasks[0].ID, again.Tasks[0].ID)
}

func (suite *DayHandlerTestSuite) TestGetDay_RequiresAuth() {
	w := suite.do(http.MethodGet, "/api/days/"+testDate, nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *DayHandlerTestSuite) TestGetDay_InvalidDate() {
	cookies := suite.loginAs("oliver", "1111")

	w := suite.do(http.MethodGet, "/api/days/not-a-date", nil, cookies)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *DayHandlerTestSuite) TestToggleTask_SignAndSelfRemove() {
	cookies := suite.loginAs("oliver", "1111")
	day := suite.getDay(cookies)
	taskID := day.Tasks[0].ID

	w := suite.toggle(taskID, cookies)
	suite.Equal(http.StatusOK, w.Code)
	var updated dto.DayDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &updated))
	suite.True(updated.Tasks[0].Done)
	suite.Equal("Oliver", updated.Tasks[0].Completions[0].Name)

	// Worker un-checks their own signature
	w = suite.toggle(taskID, cookies)
	suite.Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &updated))
	suite.False(updated.Tasks[0].Done)
}

func (suite *DayHandlerTestSuite) TestToggleTask_CoordinatorReset() {
	oliver := suite.loginAs("oliver", "1111")
	emil := suite.loginAs("emil", "2222")
	martin := suite.loginAs("martin", "4444")

	day := suite.getDay(oliver)
	taskID := day.Tasks[0].ID

	suite.Require().Equal(http.StatusOK, suite.toggle(taskID, oliver).Code)
	suite.Require().Equal(http.StatusOK, suite.toggle(taskID, emil).Code)
	suite.Require().Equal(http.StatusOK, suite.toggle(taskID, martin).Code)

	// Coordinator already signed; toggling again clears everyone
	w := suite.toggle(taskID, martin)
	suite.Require().Equal(http.StatusOK, w.Code)
	var updated dto.DayDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &updated))
	suite.False(updated.Tasks[0].Done)
	suite.Empty(updated.Tasks[0].Completions)
}

func (suite *DayHandlerTestSuite) TestToggleTask_LeadForbidden() {
	jon := suite.loginAs("jon", "9999")
	day := suite.getDay(jon)

	w := suite.toggle(day.Tasks[0].ID, jon)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *DayHandlerTestSuite) TestToggleTask_UnknownTask() {
	cookies := suite.loginAs("oliver", "1111")
	suite.getDay(cookies)

	w := suite.toggle("tsk-missing", cookies)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *DayHandlerTestSuite) TestAddAdHocTask() {
	cookies := suite.loginAs("oliver", "1111")
	suite.getDay(cookies)

	w := suite.do(http.MethodPost, "/api/days/"+testDate+"/tasks", map[string]string{"text": "Sweep the gate area"}, cookies)
	suite.Equal(http.StatusCreated, w.Code)

	var day dto.DayDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &day))
	suite.Len(day.Tasks, 11)
	added := day.Tasks[10]
	suite.Equal("Sweep the gate area", added.Text)
	suite.True(added.AdHoc)
	suite.False(added.Done)
}

func (suite *DayHandlerTestSuite) TestAddAdHocTask_EmptyText() {
	cookies := suite.loginAs("oliver", "1111")

	w := suite.do(http.MethodPost, "/api/days/"+testDate+"/tasks", map[string]string{"text": "   "}, cookies)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *DayHandlerTestSuite) completeAllTasks() {
	oliver := suite.loginAs("oliver", "1111")
	day := suite.getDay(oliver)
	for _, task := range day.Tasks {
		suite.Require().Equal(http.StatusOK, suite.toggle(task.ID, oliver).Code)
	}
}

func (suite *DayHandlerTestSuite) TestApprove_Flow() {
	jon := suite.loginAs("jon", "9999")
	oliver := suite.loginAs("oliver", "1111")
	suite.getDay(jon)

	// Not ready: nothing signed yet
	w := suite.do(http.MethodPost, "/api/days/"+testDate+"/approve", nil, jon)
	suite.Equal(http.StatusConflict, w.Code)

	// Workers may not approve
	w = suite.do(http.MethodPost, "/api/days/"+testDate+"/approve", nil, oliver)
	suite.Equal(http.StatusForbidden, w.Code)

	suite.completeAllTasks()

	w = suite.do(http.MethodPost, "/api/days/"+testDate+"/approve", nil, jon)
	suite.Require().Equal(http.StatusOK, w.Code)
	var day dto.DayDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &day))
	suite.True(day.Approved)
	suite.Equal("Jon", day.ApprovedBy.Name)
	suite.NotNil(day.ApprovedAt)

	// Approved is terminal: no re-approve, no further edits
	w = suite.do(http.MethodPost, "/api/days/"+testDate+"/approve", nil, jon)
	suite.Equal(http.StatusConflict, w.Code)
	w = suite.toggle(day.Tasks[0].ID, oliver)
	suite.Equal(http.StatusConflict, w.Code)
	w = suite.do(http.MethodPost, "/api/days/"+testDate+"/tasks", map[string]string{"text": "late"}, oliver)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *DayHandlerTestSuite) TestGetLog() {
	oliver := suite.loginAs("oliver", "1111")
	day := suite.getDay(oliver)
	suite.Require().Equal(http.StatusOK, suite.toggle(day.Tasks[0].ID, oliver).Code)
	suite.Require().Equal(http.StatusOK, suite.toggle(day.Tasks[1].ID, oliver).Code)

	w := suite.do(http.MethodGet, "/api/days/"+testDate+"/log?page=1&limit=1", nil, oliver)
	suite.Require().Equal(http.StatusOK, w.Code)

	var response struct {
		Log        []dto.LogEntryDTO `json:"log"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Len(response.Log, 1)
	suite.Equal(2, response.Pagination.Total)
	suite.Contains(response.Log[0].Text, "Oliver completed: ")
}

func (suite *DayHandlerTestSuite) TestReport_LeadOnlyAndApprovedOnly() {
	jon := suite.loginAs("jon", "9999")
	oliver := suite.loginAs("oliver", "1111")
	suite.getDay(jon)

	// Workers cannot export
	w := suite.do(http.MethodGet, "/api/days/"+testDate+"/report", nil, oliver)
	suite.Equal(http.StatusForbidden, w.Code)

	// Unapproved days cannot export
	w = suite.do(http.MethodGet, "/api/days/"+testDate+"/report", nil, jon)
	suite.Equal(http.StatusConflict, w.Code)

	suite.completeAllTasks()
	suite.Require().Equal(http.StatusOK,
		suite.do(http.MethodPost, "/api/days/"+testDate+"/approve", nil, jon).Code)

	w = suite.do(http.MethodGet, "/api/days/"+testDate+"/report", nil, jon)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Disposition"), "checklist-"+testDate)
	suite.NotEmpty(w.Body.Bytes())
}

func TestDayHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DayHandlerTestSuite))
}
