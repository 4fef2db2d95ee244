package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-payroll/internal/attendance"
	"go-payroll/internal/events"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	listFn func(ctx context.Context, userID string, filter attendance.ListAttendanceFilter) ([]attendance.AttendanceResponse, error)
}

func (f *fakeService) HandlePunch(context.Context, events.PunchRecordedEvent) error { return nil }
func (f *fakeService) List(ctx context.Context, userID string, filter attendance.ListAttendanceFilter) ([]attendance.AttendanceResponse, error) {
	return f.listFn(ctx, userID, filter)
}

func TestHandler_GetAll_ScopesEmployeeToSelf(t *testing.T) {
	gin.SetMode(gin.TestMode)
	actorID := uuid.New().String()
	otherID := uuid.New().String()

	var gotUserID string
	svc := &fakeService{
		listFn: func(_ context.Context, userID string, _ attendance.ListAttendanceFilter) ([]attendance.AttendanceResponse, error) {
			gotUserID = userID
			return []attendance.AttendanceResponse{{ID: uuid.New().String()}, {ID: uuid.New().String()}}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", actorID)
	c.Set("has_read_all", false)
	c.Request = httptest.NewRequest(http.MethodGet, "/attendances?user_id="+otherID+"&page=1&limit=1", nil)
	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, actorID, gotUserID)
	assert.Contains(t, w.Body.String(), `"meta"`)
	assert.Contains(t, w.Body.String(), `"total":2`)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Set("user_id", actorID)
	c2.Set("has_read_all", true)
	c2.Request = httptest.NewRequest(http.MethodGet, "/attendances?user_id="+otherID, nil)
	h.GetAll(c2)

	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, otherID, gotUserID)
}
