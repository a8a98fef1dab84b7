package api

import (
	"context"
	"net/http"

	"homequest-admin/internal/cache"
	"homequest-admin/internal/models"
	"homequest-admin/internal/transport"
)

var (
	epListBookings   = register(Endpoint{Name: "listBookings", Method: http.MethodGet, Path: "/bookings/", Kind: KindQuery, Entity: EntityBooking, List: true})
	epCancelBooking  = register(Endpoint{Name: "cancelBooking", Method: http.MethodPost, Path: "/bookings/cancel/", Kind: KindMutation, Entity: EntityBooking, Op: OpUpdate})
	epBookingPayment = register(Endpoint{Name: "recordBookingPayment", Method: http.MethodPost, Path: "/bookings/payment/", Kind: KindMutation, Entity: EntityBooking, Op: OpUpdate})
	epBookingReview  = register(Endpoint{Name: "submitBookingReview", Method: http.MethodPost, Path: "/bookings/review/", Kind: KindMutation, Entity: EntityBooking, Op: OpUpdate})
)

// BookingsService covers the booking lifecycle screens. Lifecycle
// actions are action-path POSTs rather than per-id verbs, matching
// the backend contract.
type BookingsService struct {
	c *Client
}

func (c *Client) Bookings() *BookingsService {
	return &BookingsService{c: c}
}

func (s *BookingsService) List(params models.ListParams) *QueryHandle[models.Page[models.Booking]] {
	req := &transport.Request{Method: epListBookings.Method, Path: epListBookings.Path, Params: params.Values()}
	return subscribeQuery(s.c, epListBookings, params, req, func(page models.Page[models.Booking]) []cache.Tag {
		return listProvides(EntityBooking, page, func(b models.Booking) string { return b.ID })
	})
}

func (s *BookingsService) Cancel(ctx context.Context, action models.BookingActionRequest) (models.Booking, error) {
	req := &transport.Request{Method: epCancelBooking.Method, Path: epCancelBooking.Path, Body: action}
	return runMutation[models.Booking](ctx, s.c, req, epCancelBooking.WriteInvalidates(action.BookingID))
}

func (s *BookingsService) RecordPayment(ctx context.Context, action models.BookingActionRequest) (models.Booking, error) {
	req := &transport.Request{Method: epBookingPayment.Method, Path: epBookingPayment.Path, Body: action}
	return runMutation[models.Booking](ctx, s.c, req, epBookingPayment.WriteInvalidates(action.BookingID))
}

func (s *BookingsService) SubmitReview(ctx context.Context, action models.BookingActionRequest) (models.Booking, error) {
	req := &transport.Request{Method: epBookingReview.Method, Path: epBookingReview.Path, Body: action}
	return runMutation[models.Booking](ctx, s.c, req, epBookingReview.WriteInvalidates(action.BookingID))
}
