//go:build integration
// +build integration

package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	dbadapter "taskplanner/internal/adapter/db"
	httpadapter "taskplanner/internal/adapter/http"
	"taskplanner/internal/adapter/http/dto"
	"taskplanner/internal/adapter/http/handlers"
	"taskplanner/internal/adapter/http/middleware"
	appservice "taskplanner/internal/app/service"
	"taskplanner/internal/core/reminder"
	"taskplanner/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type TasksIntegrationSuite struct {
	IntegrationSuiteBase
	router *gin.Engine
}

func TestTasksIntegrationSuite(t *testing.T) {
	suite.Run(t, new(TasksIntegrationSuite))
}

func (s *TasksIntegrationSuite) SetupTest() {
	s.ResetDatabase()

	clock := reminder.NewFakeClock(time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local))
	authService := appservice.NewAuthService(dbadapter.NewUserRepository(s.DB), clock).WithCost(bcrypt.MinCost)
	taskService := appservice.NewTaskService(dbadapter.NewTaskRepository(s.DB), clock)

	router := gin.New()
	httpadapter.RegisterRoutes(router, "/api", httpadapter.Handlers{
		Health: handlers.NewHealthHandler(s.DB),
		Auth:   handlers.NewAuthHandler(authService),
		Task:   handlers.NewTaskHandler(taskService),
	}, authService)
	s.router = router

	s.register("alice", "alice@example.com")
	s.register("bob", "bob@example.com")
}

func (s *TasksIntegrationSuite) do(method, path, email, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if email != "" {
		req.Header.Set(middleware.UserEmailHeader, email)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *TasksIntegrationSuite) register(username, email string) {
	rec := s.do(http.MethodPost, "/api/auth/register", "",
		`{"username":"`+username+`","email":"`+email+`","password":"secret1"}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
}

func (s *TasksIntegrationSuite) create(email, body string) dto.TaskItem {
	rec := s.do(http.MethodPost, "/api/tasks", email, body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var item dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &item))
	return item
}

func (s *TasksIntegrationSuite) list(email string) []dto.TaskItem {
	rec := s.do(http.MethodGet, "/api/tasks", email, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var items []dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &items))
	return items
}

func (s *TasksIntegrationSuite) TestHealthReport() {
	rec := s.do(http.MethodGet, "/api/health/report", "", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var got handlers.HealthAdvanced
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(handlers.StatusOk, got.Status.Database)
	s.Require().Equal("mysql", got.Status.Driver)
	s.Require().Equal(handlers.StatusOk, got.Status.Schema)
	s.Require().Equal(uint64(2), got.Status.SchemaVersion)
}

func (s *TasksIntegrationSuite) TestCreateAndList_OrderedByPriority() {
	low := s.create("alice@example.com", `{"title":"low","priority":"low"}`)
	high := s.create("alice@example.com", `{"title":"high","priority":"HIGH","repeat_days":"SAT,MON","reminder":"2025-06-10T09:00"}`)
	medium := s.create("alice@example.com", `{"title":"default"}`)

	got := s.list("alice@example.com")
	s.Require().Len(got, 3)
	s.Require().Equal([]uint64{high.ID, medium.ID, low.ID}, []uint64{got[0].ID, got[1].ID, got[2].ID})
	s.Require().Equal("To Do", got[1].Status)
	s.Require().Equal("medium", got[1].Priority)
	s.Require().Equal(dto.RepeatDays{"MON", "SAT"}, got[0].RepeatDays)
	s.Require().Equal("2025-06-10T09:00:00", *got[0].ReminderTime)

	s.Require().Empty(s.list("bob@example.com"))
}

func (s *TasksIntegrationSuite) TestUpdate_PartialClearsAndScopes() {
	item := s.create("alice@example.com", `{"title":"report","work_date":"2025-06-12","due_date":"2025-06-12T17:00"}`)
	path := "/api/tasks/" + strconv.FormatUint(item.ID, 10)

	rec := s.do(http.MethodPut, path, "bob@example.com", `{"status":"Done"}`)
	s.Require().Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPut, path, "alice@example.com", `{"status":"In Progress","due_date":null}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var got dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal("In Progress", got.Status)
	s.Require().Nil(got.DueDate)
	s.Require().Equal("2025-06-12", *got.WorkDate)

	rec = s.do(http.MethodPut, path, "alice@example.com", `{"due_date":"2025-06-12T08:00","reminder_time":"2025-06-12T09:00"}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}

func (s *TasksIntegrationSuite) TestDelete() {
	item := s.create("alice@example.com", `{"title":"gone"}`)
	path := "/api/tasks/" + strconv.FormatUint(item.ID, 10)

	rec := s.do(http.MethodDelete, path, "alice@example.com", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var msg apierrors.JsonMessage
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &msg))
	s.Require().NotEmpty(msg.Message)

	rec = s.do(http.MethodDelete, path, "alice@example.com", "")
	s.Require().Equal(http.StatusNotFound, rec.Code)
}

func (s *TasksIntegrationSuite) TestAuth() {
	rec := s.do(http.MethodPost, "/api/auth/register", "", `{"username":"alice2","email":"ALICE@example.com","password":"secret1"}`)
	s.Require().Equal(http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/login", "", `{"email":"alice@example.com","password":"secret1"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/login", "", `{"email":"alice@example.com","password":"nope"}`)
	s.Require().Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/tasks", "", "")
	s.Require().Equal(http.StatusUnauthorized, rec.Code)
}
