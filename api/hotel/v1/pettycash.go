package hotelv1

import (
	"context"
	"time"

	"github.com/fekuna/termas-hotel-service/pkg/rpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const PettyCashServiceName = "termas.hotel.v1.PettyCashService"

type CashSession struct {
	Id             string     `json:"id"`
	UserId         string     `json:"user_id"`
	CashRegisterId int32      `json:"cash_register_id"`
	RegisterTypeId int32      `json:"register_type_id"`
	OpeningAmount  string     `json:"opening_amount"`
	CurrentAmount  string     `json:"current_amount"`
	Status         string     `json:"status"`
	OpenedAt       time.Time  `json:"opened_at"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

type Expense struct {
	Id            string    `json:"id"`
	SessionId     string    `json:"session_id"`
	Description   string    `json:"description"`
	Amount        string    `json:"amount"`
	Category      string    `json:"category"`
	CostCenter    string    `json:"cost_center,omitempty"`
	PaymentMethod string    `json:"payment_method"`
	UserId        string    `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type Purchase struct {
	Id            string    `json:"id"`
	SessionId     string    `json:"session_id"`
	ProductName   string    `json:"product_name"`
	ProductId     string    `json:"product_id,omitempty"`
	Quantity      string    `json:"quantity"`
	UnitPrice     string    `json:"unit_price"`
	TotalAmount   string    `json:"total_amount"`
	SupplierId    string    `json:"supplier_id,omitempty"`
	PaymentMethod string    `json:"payment_method"`
	UserId        string    `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type Income struct {
	Id            string    `json:"id"`
	SessionId     string    `json:"session_id"`
	Description   string    `json:"description"`
	Amount        string    `json:"amount"`
	Category      string    `json:"category"`
	PaymentMethod string    `json:"payment_method"`
	UserId        string    `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type CashClosure struct {
	Id           string     `json:"id"`
	SessionId    string     `json:"session_id"`
	ExpectedCash string     `json:"expected_cash"`
	ActualCash   string     `json:"actual_cash"`
	Difference   string     `json:"difference"`
	TotalSales   string     `json:"total_sales"`
	Notes        string     `json:"notes,omitempty"`
	Status       string     `json:"status"`
	ClosedBy     string     `json:"closed_by"`
	ReviewedBy   string     `json:"reviewed_by,omitempty"`
	ReviewNotes  string     `json:"review_notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
}

type OpenSessionRequest struct {
	CashRegisterId int32  `json:"cash_register_id"`
	RegisterTypeId int32  `json:"register_type_id"`
	OpeningAmount  string `json:"opening_amount"`
	Notes          string `json:"notes"`
}

type SessionResponse struct {
	Session *CashSession `json:"session"`
}

type GetCurrentSessionRequest struct {
	CashRegisterId int32 `json:"cash_register_id"`
}

type GetSessionRequest struct {
	Id string `json:"id"`
}

type ListSessionsRequest struct {
	CashRegisterId int32  `json:"cash_register_id"`
	Status         string `json:"status"`
	UserId         string `json:"user_id"`
	DateFrom       string `json:"date_from"`
	DateTo         string `json:"date_to"`
	Page           int32  `json:"page"`
	PageSize       int32  `json:"page_size"`
}

type ListSessionsResponse struct {
	Sessions []*CashSession `json:"sessions"`
	Total    int32          `json:"total"`
}

type AddExpenseRequest struct {
	SessionId     string `json:"session_id"`
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Category      string `json:"category"`
	CostCenter    string `json:"cost_center"`
	PaymentMethod string `json:"payment_method"`
}

type ExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type AddPurchaseRequest struct {
	SessionId     string `json:"session_id"`
	ProductName   string `json:"product_name"`
	ProductId     string `json:"product_id"`
	Quantity      string `json:"quantity"`
	UnitPrice     string `json:"unit_price"`
	SupplierId    string `json:"supplier_id"`
	PaymentMethod string `json:"payment_method"`
}

type PurchaseResponse struct {
	Purchase *Purchase `json:"purchase"`
}

type AddIncomeRequest struct {
	SessionId     string `json:"session_id"`
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Category      string `json:"category"`
	PaymentMethod string `json:"payment_method"`
}

type IncomeResponse struct {
	Income *Income `json:"income"`
}

type DeleteTransactionRequest struct {
	SessionId string `json:"session_id"`
	// Type is expense, purchase or income.
	Type string `json:"type"`
	Id   string `json:"id"`
}

type ListTransactionsRequest struct {
	SessionId string `json:"session_id"`
}

type ListTransactionsResponse struct {
	Expenses  []*Expense  `json:"expenses"`
	Purchases []*Purchase `json:"purchases"`
	Incomes   []*Income   `json:"incomes"`
}

type GetClosureSummaryRequest struct {
	SessionId string `json:"session_id"`
}

type ClosureSummaryResponse struct {
	Session        *CashSession `json:"session"`
	CashSales      string       `json:"cash_sales"`
	CardSales      string       `json:"card_sales"`
	OtherSales     string       `json:"other_sales"`
	CashIncomes    string       `json:"cash_incomes"`
	CashExpenses   string       `json:"cash_expenses"`
	CashPurchases  string       `json:"cash_purchases"`
	SalesCount     int32        `json:"sales_count"`
	ExpensesCount  int32        `json:"expenses_count"`
	PurchasesCount int32        `json:"purchases_count"`
	IncomesCount   int32        `json:"incomes_count"`
	ExpectedCash   string       `json:"expected_cash"`
	Duration       string       `json:"duration"`
}

type CloseSessionRequest struct {
	SessionId  string `json:"session_id"`
	ActualCash string `json:"actual_cash"`
	Notes      string `json:"notes"`
}

type ClosureResponse struct {
	Closure *CashClosure `json:"closure"`
}

type ReviewClosureRequest struct {
	ClosureId string `json:"closure_id"`
	Notes     string `json:"notes"`
}

type ListClosuresRequest struct {
	Status   string `json:"status"`
	Page     int32  `json:"page"`
	PageSize int32  `json:"page_size"`
}

type ListClosuresResponse struct {
	Closures []*CashClosure `json:"closures"`
	Total    int32          `json:"total"`
}

type PettyCashServiceServer interface {
	OpenSession(context.Context, *OpenSessionRequest) (*SessionResponse, error)
	GetCurrentSession(context.Context, *GetCurrentSessionRequest) (*SessionResponse, error)
	GetSession(context.Context, *GetSessionRequest) (*SessionResponse, error)
	ListSessions(context.Context, *ListSessionsRequest) (*ListSessionsResponse, error)
	AddExpense(context.Context, *AddExpenseRequest) (*ExpenseResponse, error)
	AddPurchase(context.Context, *AddPurchaseRequest) (*PurchaseResponse, error)
	AddIncome(context.Context, *AddIncomeRequest) (*IncomeResponse, error)
	DeleteTransaction(context.Context, *DeleteTransactionRequest) (*emptypb.Empty, error)
	ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error)
	GetClosureSummary(context.Context, *GetClosureSummaryRequest) (*ClosureSummaryResponse, error)
	CloseSession(context.Context, *CloseSessionRequest) (*ClosureResponse, error)
	ApproveClosure(context.Context, *ReviewClosureRequest) (*ClosureResponse, error)
	RejectClosure(context.Context, *ReviewClosureRequest) (*ClosureResponse, error)
	ListClosures(context.Context, *ListClosuresRequest) (*ListClosuresResponse, error)
}

var PettyCashService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: PettyCashServiceName,
	HandlerType: (*PettyCashServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(PettyCashServiceName, "OpenSession", PettyCashServiceServer.OpenSession),
		rpc.Unary(PettyCashServiceName, "GetCurrentSession", PettyCashServiceServer.GetCurrentSession),
		rpc.Unary(PettyCashServiceName, "GetSession", PettyCashServiceServer.GetSession),
		rpc.Unary(PettyCashServiceName, "ListSessions", PettyCashServiceServer.ListSessions),
		rpc.Unary(PettyCashServiceName, "AddExpense", PettyCashServiceServer.AddExpense),
		rpc.Unary(PettyCashServiceName, "AddPurchase", PettyCashServiceServer.AddPurchase),
		rpc.Unary(PettyCashServiceName, "AddIncome", PettyCashServiceServer.AddIncome),
		rpc.Unary(PettyCashServiceName, "DeleteTransaction", PettyCashServiceServer.DeleteTransaction),
		rpc.Unary(PettyCashServiceName, "ListTransactions", PettyCashServiceServer.ListTransactions),
		rpc.Unary(PettyCashServiceName, "GetClosureSummary", PettyCashServiceServer.GetClosureSummary),
		rpc.Unary(PettyCashServiceName, "CloseSession", PettyCashServiceServer.CloseSession),
		rpc.Unary(PettyCashServiceName, "ApproveClosure", PettyCashServiceServer.ApproveClosure),
		rpc.Unary(PettyCashServiceName, "RejectClosure", PettyCashServiceServer.RejectClosure),
		rpc.Unary(PettyCashServiceName, "ListClosures", PettyCashServiceServer.ListClosures),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterPettyCashServiceServer(s grpc.ServiceRegistrar, srv PettyCashServiceServer) {
	s.RegisterService(&PettyCashService_ServiceDesc, srv)
}
