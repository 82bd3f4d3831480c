package bookingctrl_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"shareit/app/identity"
	bookingctrl "shareit/app/server/controller/booking"
	"shareit/model"
	bookingsvc "shareit/service/booking"
)

type svcStub struct {
	createFn func(ctx context.Context, bookerID int64, req model.BookingCreateReq) (*model.BookingResponse, error)
	approveF func(ctx context.Context, bookingID, callerID int64, approved bool) (*model.BookingResponse, error)
	getFn    func(ctx context.Context, bookingID, callerID int64) (*model.BookingResponse, error)
	listFn   func(ctx context.Context, userID int64, state model.BookingState) ([]model.BookingResponse, error)
}

var _ bookingsvc.Service = (*svcStub)(nil)

func (s *svcStub) Create(ctx context.Context, bookerID int64, req model.BookingCreateReq) (*model.BookingResponse, error) {
	return s.createFn(ctx, bookerID, req)
}

func (s *svcStub) SetApproved(ctx context.Context, bookingID, callerID int64, approved bool) (*model.BookingResponse, error) {
	return s.approveF(ctx, bookingID, callerID, approved)
}

func (s *svcStub) Get(ctx context.Context, bookingID, callerID int64) (*model.BookingResponse, error) {
	return s.getFn(ctx, bookingID, callerID)
}

func (s *svcStub) ListByBooker(ctx context.Context, userID int64, state model.BookingState) ([]model.BookingResponse, error) {
	return s.listFn(ctx, userID, state)
}

func (s *svcStub) ListByOwner(ctx context.Context, userID int64, state model.BookingState) ([]model.BookingResponse, error) {
	return s.listFn(ctx, userID, state)
}

func newController(s bookingsvc.Service) *bookingctrl.Controller {
	return &bookingctrl.Controller{
		Svc: s,
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func doCreate(t *testing.T, svc bookingsvc.Service, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if userID != "" {
		req.Header.Set(identity.Header, userID)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, newController(svc).Create(c))
	return rec
}

const validBody = `{"itemId":10,"start":"2025-06-01 12:00:00","end":"2025-06-02 12:00:00"}`

func TestCreate_MissingHeader(t *testing.T) {
	rec := doCreate(t, &svcStub{}, "", validBody)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), identity.Header)
}

func TestCreate_MissingFields(t *testing.T) {
	rec := doCreate(t, &svcStub{}, "2", `{"itemId":10}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreate_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{bookingsvc.ErrUserNotFound, http.StatusNotFound},
		{bookingsvc.ErrItemNotFound, http.StatusNotFound},
		{bookingsvc.ErrUnavailable, http.StatusBadRequest},
		{bookingsvc.ErrDates, http.StatusBadRequest},
		{bookingsvc.ErrOverlap, http.StatusConflict},
	}
	for _, tc := range cases {
		svc := &svcStub{
			createFn: func(ctx context.Context, bookerID int64, req model.BookingCreateReq) (*model.BookingResponse, error) {
				return nil, tc.err
			},
		}
		rec := doCreate(t, svc, "2", validBody)
		require.Equal(t, tc.code, rec.Code, tc.err.Error())
		require.Contains(t, rec.Body.String(), `"error"`)
	}
}

func TestCreate_Success(t *testing.T) {
	svc := &svcStub{
		createFn: func(ctx context.Context, bookerID int64, req model.BookingCreateReq) (*model.BookingResponse, error) {
			require.Equal(t, int64(2), bookerID)
			require.Equal(t, int64(10), req.ItemID)
			return &model.BookingResponse{ID: 5, Status: model.BookingWaiting}, nil
		},
	}
	rec := doCreate(t, svc, "2", validBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"WAITING"`)
}

func TestCreate_InternalErrorIsOpaque(t *testing.T) {
	svc := &svcStub{
		createFn: func(ctx context.Context, bookerID int64, req model.BookingCreateReq) (*model.BookingResponse, error) {
			return nil, context.DeadlineExceeded
		},
	}
	rec := doCreate(t, svc, "2", validBody)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "internal error")
	require.NotContains(t, rec.Body.String(), "deadline")
}

func TestSetApproved_ForbiddenForNonOwner(t *testing.T) {
	svc := &svcStub{
		approveF: func(ctx context.Context, bookingID, callerID int64, approved bool) (*model.BookingResponse, error) {
			return nil, bookingsvc.ErrNotOwner
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/bookings/5?approved=true", nil)
	req.Header.Set(identity.Header, "2")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("bookingId")
	c.SetParamValues("5")

	require.NoError(t, newController(svc).SetApproved(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSetApproved_BadApprovedParam(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/bookings/5?approved=maybe", nil)
	req.Header.Set(identity.Header, "1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("bookingId")
	c.SetParamValues("5")

	require.NoError(t, newController(&svcStub{}).SetApproved(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestList_UnknownState(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/bookings?state=SOMETIMES", nil)
	req.Header.Set(identity.Header, "2")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, newController(&svcStub{}).ListByBooker(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "SOMETIMES")
}

func TestListByOwner_OwnsNothing(t *testing.T) {
	svc := &svcStub{
		listFn: func(ctx context.Context, userID int64, state model.BookingState) ([]model.BookingResponse, error) {
			return nil, bookingsvc.ErrOwnsNothing
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/bookings/owner", nil)
	req.Header.Set(identity.Header, "2")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, newController(svc).ListByOwner(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
}
