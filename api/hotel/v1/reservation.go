package hotelv1

import (
	"context"
	"time"

	"github.com/fekuna/termas-hotel-service/pkg/rpc"
	"google.golang.org/grpc"
)

const ReservationServiceName = "termas.hotel.v1.ReservationService"

type Adjustment struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Amount string `json:"amount,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type ReservationProduct struct {
	Id         string `json:"id"`
	ProductId  string `json:"product_id"`
	Quantity   int32  `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	TotalPrice string `json:"total_price"`
}

type ReservationComment struct {
	Id          string    `json:"id"`
	Text        string    `json:"text"`
	Author      string    `json:"author"`
	CommentType string    `json:"comment_type"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReservationPayment struct {
	Id            string    `json:"id"`
	ReservationId string    `json:"reservation_id"`
	Amount        string    `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	Reference     string    `json:"reference,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	ProcessedBy   string    `json:"processed_by"`
	CreatedAt     time.Time `json:"created_at"`
}

type Reservation struct {
	Id             string                `json:"id"`
	ClientId       string                `json:"client_id"`
	GuestName      string                `json:"guest_name"`
	GuestEmail     string                `json:"guest_email"`
	GuestPhone     string                `json:"guest_phone"`
	CheckIn        string                `json:"check_in"`
	CheckOut       string                `json:"check_out"`
	Nights         int32                 `json:"nights"`
	Guests         int32                 `json:"guests"`
	RoomId         string                `json:"room_id"`
	ClientType     string                `json:"client_type"`
	CompanyName    string                `json:"company_name,omitempty"`
	CompanyRut     string                `json:"company_rut,omitempty"`
	BillingName    string                `json:"billing_name,omitempty"`
	BillingRut     string                `json:"billing_rut,omitempty"`
	BillingAddress string                `json:"billing_address,omitempty"`
	AuthorizedBy   string                `json:"authorized_by,omitempty"`
	Status         string                `json:"status"`
	TotalAmount    string                `json:"total_amount"`
	DepositAmount  string                `json:"deposit_amount"`
	PaidAmount     string                `json:"paid_amount"`
	PendingAmount  string                `json:"pending_amount"`
	PaymentStatus  string                `json:"payment_status"`
	PaymentMethod  string                `json:"payment_method,omitempty"`
	Discount       *Adjustment           `json:"discount,omitempty"`
	Surcharge      *Adjustment           `json:"surcharge,omitempty"`
	CreatedBy      string                `json:"created_by,omitempty"`
	UpdatedBy      string                `json:"updated_by,omitempty"`
	Products       []*ReservationProduct `json:"products,omitempty"`
	Comments       []*ReservationComment `json:"comments,omitempty"`
	Payments       []*ReservationPayment `json:"payments,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

type ProductLine struct {
	ProductId string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type PaymentInput struct {
	Amount    string `json:"amount"`
	Method    string `json:"method"`
	Reference string `json:"reference"`
	Notes     string `json:"notes"`
}

type CreateReservationRequest struct {
	ClientId       string         `json:"client_id"`
	GuestName      string         `json:"guest_name"`
	GuestEmail     string         `json:"guest_email"`
	GuestPhone     string         `json:"guest_phone"`
	CheckIn        string         `json:"check_in"`
	CheckOut       string         `json:"check_out"`
	Guests         int32          `json:"guests"`
	RoomId         string         `json:"room_id"`
	ClientType     string         `json:"client_type"`
	CompanyName    string         `json:"company_name"`
	CompanyRut     string         `json:"company_rut"`
	BillingName    string         `json:"billing_name"`
	BillingRut     string         `json:"billing_rut"`
	BillingAddress string         `json:"billing_address"`
	AuthorizedBy   string         `json:"authorized_by"`
	BaseAmount     string         `json:"base_amount"`
	DepositAmount  string         `json:"deposit_amount"`
	PaymentMethod  string         `json:"payment_method"`
	Discount       *Adjustment    `json:"discount"`
	Surcharge      *Adjustment    `json:"surcharge"`
	Products       []*ProductLine `json:"products"`
	Observations   string         `json:"observations"`
	InitialPayment *PaymentInput  `json:"initial_payment"`
}

type GetReservationRequest struct {
	Id string `json:"id"`
}

type ListReservationsRequest struct {
	Status        string `json:"status"`
	ClientType    string `json:"client_type"`
	CheckInFrom   string `json:"check_in_from"`
	CheckInTo     string `json:"check_in_to"`
	RoomId        string `json:"room_id"`
	PaymentStatus string `json:"payment_status"`
	Search        string `json:"search"`
	Page          int32  `json:"page"`
	PageSize      int32  `json:"page_size"`
}

type ListReservationsResponse struct {
	Reservations []*Reservation `json:"reservations"`
	Total        int32          `json:"total"`
}

type UpdateReservationRequest struct {
	Id             string      `json:"id"`
	GuestName      string      `json:"guest_name"`
	GuestEmail     string      `json:"guest_email"`
	GuestPhone     string      `json:"guest_phone"`
	CheckIn        string      `json:"check_in"`
	CheckOut       string      `json:"check_out"`
	Guests         int32       `json:"guests"`
	RoomId         string      `json:"room_id"`
	CompanyName    string      `json:"company_name"`
	CompanyRut     string      `json:"company_rut"`
	BillingName    string      `json:"billing_name"`
	BillingRut     string      `json:"billing_rut"`
	BillingAddress string      `json:"billing_address"`
	AuthorizedBy   string      `json:"authorized_by"`
	BaseAmount     string      `json:"base_amount"`
	Discount       *Adjustment `json:"discount"`
	Surcharge      *Adjustment `json:"surcharge"`
}

type UpdateReservationStatusRequest struct {
	Id     string `json:"id"`
	Status string `json:"status"`
}

type ReservationActionRequest struct {
	Id     string `json:"id"`
	Reason string `json:"reason"`
}

type ReservationResponse struct {
	Reservation *Reservation `json:"reservation"`
}

type AddPaymentRequest struct {
	ReservationId string        `json:"reservation_id"`
	Payment       *PaymentInput `json:"payment"`
}

type AddPaymentResponse struct {
	Reservation *Reservation        `json:"reservation"`
	Payment     *ReservationPayment `json:"payment"`
}

type ListPaymentsRequest struct {
	ReservationId string `json:"reservation_id"`
}

type ListPaymentsResponse struct {
	Payments []*ReservationPayment `json:"payments"`
}

type AddCommentRequest struct {
	ReservationId string `json:"reservation_id"`
	Text          string `json:"text"`
	CommentType   string `json:"comment_type"`
}

type CommentResponse struct {
	Comment *ReservationComment `json:"comment"`
}

type GetStatsRequest struct{}

type ReservationStats struct {
	Total           int32   `json:"total"`
	Prereserva      int32   `json:"prereserva"`
	Confirmada      int32   `json:"confirmada"`
	EnCurso         int32   `json:"en_curso"`
	Finalizada      int32   `json:"finalizada"`
	Cancelled       int32   `json:"cancelled"`
	Revenue         string  `json:"revenue"`
	PendingPayments string  `json:"pending_payments"`
	ActiveRooms     int32   `json:"active_rooms"`
	OccupiedRooms   int32   `json:"occupied_rooms"`
	OccupancyRate   float64 `json:"occupancy_rate"`
}

type DayRequest struct {
	// Date is YYYY-MM-DD; empty means today in the hotel timezone.
	Date string `json:"date"`
}

type OccupancyRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type DailyOccupancy struct {
	Date         string `json:"date"`
	Reservations int32  `json:"reservations"`
}

type OccupancyResponse struct {
	Days []*DailyOccupancy `json:"days"`
}

type ReservationServiceServer interface {
	CreateReservation(context.Context, *CreateReservationRequest) (*ReservationResponse, error)
	GetReservation(context.Context, *GetReservationRequest) (*ReservationResponse, error)
	ListReservations(context.Context, *ListReservationsRequest) (*ListReservationsResponse, error)
	UpdateReservation(context.Context, *UpdateReservationRequest) (*ReservationResponse, error)
	UpdateReservationStatus(context.Context, *UpdateReservationStatusRequest) (*ReservationResponse, error)
	ConfirmReservation(context.Context, *ReservationActionRequest) (*ReservationResponse, error)
	CancelReservation(context.Context, *ReservationActionRequest) (*ReservationResponse, error)
	CheckIn(context.Context, *ReservationActionRequest) (*ReservationResponse, error)
	CheckOut(context.Context, *ReservationActionRequest) (*ReservationResponse, error)
	AddPayment(context.Context, *AddPaymentRequest) (*AddPaymentResponse, error)
	ListPayments(context.Context, *ListPaymentsRequest) (*ListPaymentsResponse, error)
	AddComment(context.Context, *AddCommentRequest) (*CommentResponse, error)
	GetStats(context.Context, *GetStatsRequest) (*ReservationStats, error)
	TodayArrivals(context.Context, *DayRequest) (*ListReservationsResponse, error)
	TodayDepartures(context.Context, *DayRequest) (*ListReservationsResponse, error)
	OccupancyByDate(context.Context, *OccupancyRequest) (*OccupancyResponse, error)
}

var ReservationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ReservationServiceName,
	HandlerType: (*ReservationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ReservationServiceName, "CreateReservation", ReservationServiceServer.CreateReservation),
		rpc.Unary(ReservationServiceName, "GetReservation", ReservationServiceServer.GetReservation),
		rpc.Unary(ReservationServiceName, "ListReservations", ReservationServiceServer.ListReservations),
		rpc.Unary(ReservationServiceName, "UpdateReservation", ReservationServiceServer.UpdateReservation),
		rpc.Unary(ReservationServiceName, "UpdateReservationStatus", ReservationServiceServer.UpdateReservationStatus),
		rpc.Unary(ReservationServiceName, "ConfirmReservation", ReservationServiceServer.ConfirmReservation),
		rpc.Unary(ReservationServiceName, "CancelReservation", ReservationServiceServer.CancelReservation),
		rpc.Unary(ReservationServiceName, "CheckIn", ReservationServiceServer.CheckIn),
		rpc.Unary(ReservationServiceName, "CheckOut", ReservationServiceServer.CheckOut),
		rpc.Unary(ReservationServiceName, "AddPayment", ReservationServiceServer.AddPayment),
		rpc.Unary(ReservationServiceName, "ListPayments", ReservationServiceServer.ListPayments),
		rpc.Unary(ReservationServiceName, "AddComment", ReservationServiceServer.AddComment),
		rpc.Unary(ReservationServiceName, "GetStats", ReservationServiceServer.GetStats),
		rpc.Unary(ReservationServiceName, "TodayArrivals", ReservationServiceServer.TodayArrivals),
		rpc.Unary(ReservationServiceName, "TodayDepartures", ReservationServiceServer.TodayDepartures),
		rpc.Unary(ReservationServiceName, "OccupancyByDate", ReservationServiceServer.OccupancyByDate),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterReservationServiceServer(s grpc.ServiceRegistrar, srv ReservationServiceServer) {
	s.RegisterService(&ReservationService_ServiceDesc, srv)
}
