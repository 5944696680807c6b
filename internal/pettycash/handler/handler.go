package handler

import (
	"context"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/internal/convert"
	"github.com/fekuna/termas-hotel-service/internal/grpcerr"
	"github.com/fekuna/termas-hotel-service/internal/model"
	"github.com/fekuna/termas-hotel-service/internal/pettycash"
	"github.com/fekuna/termas-hotel-service/internal/pettycash/dto"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"
)

var _ hotelv1.PettyCashServiceServer = (*PettyCashHandler)(nil)

type PettyCashHandler struct {
	uc     pettycash.UseCase
	logger logger.ZapLogger
}

func NewPettyCashHandler(uc pettycash.UseCase, log logger.ZapLogger) *PettyCashHandler {
	return &PettyCashHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *PettyCashHandler) OpenSession(ctx context.Context, req *hotelv1.OpenSessionRequest) (*hotelv1.SessionResponse, error) {
	opening, err := convert.Decimal("opening_amount", req.OpeningAmount)
	if err != nil {
		return nil, err
	}
	s, err := h.uc.OpenSession(ctx, &dto.OpenSessionInput{
		CashRegisterID: int(req.CashRegisterId),
		RegisterTypeID: int(req.RegisterTypeId),
		OpeningAmount:  opening,
		Notes:          req.Notes,
	})
	if err != nil {
		h.logger.Error("failed to open cash session", zap.Int32("cash_register_id", req.CashRegisterId), zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.SessionResponse{Session: MapSessionToProto(s)}, nil
}

func (h *PettyCashHandler) GetCurrentSession(ctx context.Context, req *hotelv1.GetCurrentSessionRequest) (*hotelv1.SessionResponse, error) {
	s, err := h.uc.GetCurrentSession(ctx, int(req.CashRegisterId))
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.SessionResponse{Session: MapSessionToProto(s)}, nil
}

func (h *PettyCashHandler) GetSession(ctx context.Context, req *hotelv1.GetSessionRequest) (*hotelv1.SessionResponse, error) {
	s, err := h.uc.GetSession(ctx, req.Id)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.SessionResponse{Session: MapSessionToProto(s)}, nil
}

func (h *PettyCashHandler) ListSessions(ctx context.Context, req *hotelv1.ListSessionsRequest) (*hotelv1.ListSessionsResponse, error) {
	from, err := convert.OptDate("date_from", req.DateFrom)
	if err != nil {
		return nil, err
	}
	to, err := convert.DayEnd("date_to", req.DateTo)
	if err != nil {
		return nil, err
	}

	sessions, count, err := h.uc.ListSessions(ctx, &dto.SessionFilters{
		CashRegisterID: int(req.CashRegisterId),
		Status:         req.Status,
		UserID:         req.UserId,
		From:           from,
		To:             to,
		Page:           int(req.Page),
		PageSize:       int(req.PageSize),
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}

	out := make([]*hotelv1.CashSession, len(sessions))
	for i := range sessions {
		out[i] = MapSessionToProto(&sessions[i])
	}
	return &hotelv1.ListSessionsResponse{Sessions: out, Total: int32(count)}, nil
}

func (h *PettyCashHandler) AddExpense(ctx context.Context, req *hotelv1.AddExpenseRequest) (*hotelv1.ExpenseResponse, error) {
	amount, err := convert.Decimal("amount", req.Amount)
	if err != nil {
		return nil, err
	}
	e, err := h.uc.AddExpense(ctx, &dto.ExpenseInput{
		SessionID:     req.SessionId,
		Description:   req.Description,
		Amount:        amount,
		Category:      req.Category,
		CostCenter:    req.CostCenter,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ExpenseResponse{Expense: mapExpense(e)}, nil
}

func (h *PettyCashHandler) AddPurchase(ctx context.Context, req *hotelv1.AddPurchaseRequest) (*hotelv1.PurchaseResponse, error) {
	quantity, err := convert.Decimal("quantity", req.Quantity)
	if err != nil {
		return nil, err
	}
	unitPrice, err := convert.Decimal("unit_price", req.UnitPrice)
	if err != nil {
		return nil, err
	}
	p, err := h.uc.AddPurchase(ctx, &dto.PurchaseInput{
		SessionID:     req.SessionId,
		ProductName:   req.ProductName,
		ProductID:     req.ProductId,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		SupplierID:    req.SupplierId,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.PurchaseResponse{Purchase: mapPurchase(p)}, nil
}

func (h *PettyCashHandler) AddIncome(ctx context.Context, req *hotelv1.AddIncomeRequest) (*hotelv1.IncomeResponse, error) {
	amount, err := convert.Decimal("amount", req.Amount)
	if err != nil {
		return nil, err
	}
	i, err := h.uc.AddIncome(ctx, &dto.IncomeInput{
		SessionID:     req.SessionId,
		Description:   req.Description,
		Amount:        amount,
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.IncomeResponse{Income: mapIncome(i)}, nil
}

func (h *PettyCashHandler) DeleteTransaction(ctx context.Context, req *hotelv1.DeleteTransactionRequest) (*emptypb.Empty, error) {
	if err := h.uc.DeleteTransaction(ctx, req.Type, req.SessionId, req.Id); err != nil {
		h.logger.Warn("failed to delete petty cash transaction", zap.String("id", req.Id), zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &emptypb.Empty{}, nil
}

func (h *PettyCashHandler) ListTransactions(ctx context.Context, req *hotelv1.ListTransactionsRequest) (*hotelv1.ListTransactionsResponse, error) {
	txs, err := h.uc.ListTransactions(ctx, req.SessionId)
	if err != nil {
		return nil, grpcerr.Status(err)
	}

	resp := &hotelv1.ListTransactionsResponse{
		Expenses:  make([]*hotelv1.Expense, len(txs.Expenses)),
		Purchases: make([]*hotelv1.Purchase, len(txs.Purchases)),
		Incomes:   make([]*hotelv1.Income, len(txs.Incomes)),
	}
	for i := range txs.Expenses {
		resp.Expenses[i] = mapExpense(&txs.Expenses[i])
	}
	for i := range txs.Purchases {
		resp.Purchases[i] = mapPurchase(&txs.Purchases[i])
	}
	for i := range txs.Incomes {
		resp.Incomes[i] = mapIncome(&txs.Incomes[i])
	}
	return resp, nil
}

func (h *PettyCashHandler) GetClosureSummary(ctx context.Context, req *hotelv1.GetClosureSummaryRequest) (*hotelv1.ClosureSummaryResponse, error) {
	s, err := h.uc.GetClosureSummary(ctx, req.SessionId)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	t := s.Totals
	return &hotelv1.ClosureSummaryResponse{
		Session:        MapSessionToProto(s.Session),
		CashSales:      t.CashSales.String(),
		CardSales:      t.CardSales.String(),
		OtherSales:     t.OtherSales.String(),
		CashIncomes:    t.CashIncomes.String(),
		CashExpenses:   t.CashExpenses.String(),
		CashPurchases:  t.CashPurchases.String(),
		SalesCount:     int32(t.SalesCount),
		ExpensesCount:  int32(t.ExpensesCount),
		PurchasesCount: int32(t.PurchasesCount),
		IncomesCount:   int32(t.IncomesCount),
		ExpectedCash:   s.ExpectedCash.String(),
		Duration:       s.Duration,
	}, nil
}

func (h *PettyCashHandler) CloseSession(ctx context.Context, req *hotelv1.CloseSessionRequest) (*hotelv1.ClosureResponse, error) {
	actual, err := convert.Decimal("actual_cash", req.ActualCash)
	if err != nil {
		return nil, err
	}
	c, err := h.uc.CloseSession(ctx, &dto.CloseSessionInput{
		SessionID:  req.SessionId,
		ActualCash: actual,
		Notes:      req.Notes,
	})
	if err != nil {
		h.logger.Error("failed to close cash session", zap.String("session_id", req.SessionId), zap.Error(err))
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ClosureResponse{Closure: mapClosure(c)}, nil
}

func (h *PettyCashHandler) ApproveClosure(ctx context.Context, req *hotelv1.ReviewClosureRequest) (*hotelv1.ClosureResponse, error) {
	c, err := h.uc.ApproveClosure(ctx, req.ClosureId, req.Notes)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ClosureResponse{Closure: mapClosure(c)}, nil
}

func (h *PettyCashHandler) RejectClosure(ctx context.Context, req *hotelv1.ReviewClosureRequest) (*hotelv1.ClosureResponse, error) {
	c, err := h.uc.RejectClosure(ctx, req.ClosureId, req.Notes)
	if err != nil {
		return nil, grpcerr.Status(err)
	}
	return &hotelv1.ClosureResponse{Closure: mapClosure(c)}, nil
}

func (h *PettyCashHandler) ListClosures(ctx context.Context, req *hotelv1.ListClosuresRequest) (*hotelv1.ListClosuresResponse, error) {
	closures, count, err := h.uc.ListClosures(ctx, &dto.ClosureFilters{
		Status:   req.Status,
		Page:     int(req.Page),
		PageSize: int(req.PageSize),
	})
	if err != nil {
		return nil, grpcerr.Status(err)
	}

	out := make([]*hotelv1.CashClosure, len(closures))
	for i := range closures {
		out[i] = mapClosure(&closures[i])
	}
	return &hotelv1.ListClosuresResponse{Closures: out, Total: int32(count)}, nil
}

// MapSessionToProto is shared with the POS handler.
func MapSessionToProto(s *model.CashSession) *hotelv1.CashSession {
	if s == nil {
		return nil
	}
	return &hotelv1.CashSession{
		Id:             s.ID,
		UserId:         s.UserID,
		CashRegisterId: int32(s.CashRegisterID),
		RegisterTypeId: int32(s.RegisterTypeID),
		OpeningAmount:  s.OpeningAmount.String(),
		CurrentAmount:  s.CurrentAmount.String(),
		Status:         s.Status,
		OpenedAt:       s.OpenedAt,
		ClosedAt:       s.ClosedAt,
		Notes:          convert.Str(s.Notes),
	}
}

func mapExpense(e *model.Expense) *hotelv1.Expense {
	return &hotelv1.Expense{
		Id:            e.ID,
		SessionId:     e.SessionID,
		Description:   e.Description,
		Amount:        e.Amount.String(),
		Category:      e.Category,
		CostCenter:    convert.Str(e.CostCenter),
		PaymentMethod: e.PaymentMethod,
		UserId:        e.UserID,
		CreatedAt:     e.CreatedAt,
	}
}

func mapPurchase(p *model.Purchase) *hotelv1.Purchase {
	return &hotelv1.Purchase{
		Id:            p.ID,
		SessionId:     p.SessionID,
		ProductName:   p.ProductName,
		ProductId:     convert.Str(p.ProductID),
		Quantity:      p.Quantity.String(),
		UnitPrice:     p.UnitPrice.String(),
		TotalAmount:   p.TotalAmount.String(),
		SupplierId:    convert.Str(p.SupplierID),
		PaymentMethod: p.PaymentMethod,
		UserId:        p.UserID,
		CreatedAt:     p.CreatedAt,
	}
}

func mapIncome(i *model.Income) *hotelv1.Income {
	return &hotelv1.Income{
		Id:            i.ID,
		SessionId:     i.SessionID,
		Description:   i.Description,
		Amount:        i.Amount.String(),
		Category:      i.Category,
		PaymentMethod: i.PaymentMethod,
		UserId:        i.UserID,
		CreatedAt:     i.CreatedAt,
	}
}

func mapClosure(c *model.CashClosure) *hotelv1.CashClosure {
	if c == nil {
		return nil
	}
	return &hotelv1.CashClosure{
		Id:           c.ID,
		SessionId:    c.SessionID,
		ExpectedCash: c.ExpectedCash.String(),
		ActualCash:   c.ActualCash.String(),
		Difference:   c.Difference.String(),
		TotalSales:   c.TotalSales.String(),
		Notes:        convert.Str(c.Notes),
		Status:       c.Status,
		ClosedBy:     c.ClosedBy,
		ReviewedBy:   convert.Str(c.ReviewedBy),
		ReviewNotes:  convert.Str(c.ReviewNotes),
		CreatedAt:    c.CreatedAt,
		ReviewedAt:   c.ReviewedAt,
	}
}
