//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"vitrine-engine/internal/handler/api"
	"vitrine-engine/internal/handler/middleware"
	"vitrine-engine/internal/pkg/errs"
	"vitrine-engine/internal/usecase/commands"
	"vitrine-engine/internal/usecase/queries"
	"vitrine-engine/tests/common/httptest"
	"vitrine-engine/tests/common/testutil"
	commandsmock "vitrine-engine/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckoutCommands
	handler      *api.CheckoutHandler
	sessionID    string
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.handler = api.NewCheckoutHandler(s.mockCommands)
	s.sessionID = uuid.New().String()

	s.router.Use(middleware.SessionMiddleware())
	s.router.POST("/checkout", s.handler.Submit)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

func submitResult() *commands.SubmitOrderResult {
	return &commands.SubmitOrderResult{
		Order: &queries.OrderView{
			ID:              "PED-20260310142503",
			CreatedAt:       time.Date(2026, 3, 10, 14, 25, 3, 0, time.UTC),
			CustomerName:    "Maria Silva",
			CustomerContact: "5511999990000",
			Items: []*queries.OrderItemView{
				{ProductID: 1, Name: "Camiseta", UnitPriceCents: 2000, Quantity: 2},
			},
			SubtotalCents: 4000,
			TotalCents:    4000,
			CashbackCents: 200,
			Status:        "PENDING",
		},
		DeepLink: "https://wa.me/5511999990000?text=pedido",
	}
}

func (s *CheckoutHandlerTestSuite) TestSubmit() {
	url := "/checkout"
	reqBody := map[string]any{
		"customer_name":    "Maria Silva",
		"customer_contact": "(11) 99999-0000",
	}

	s.Run("success: returns 201 with the order and deep link", func() {
		s.mockCommands.EXPECT().
			Submit(gomock.Any(), gomock.Any(), "Maria Silva", "(11) 99999-0000").
			Return(submitResult(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.sessionID)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("PED-20260310142503", body["id"])
		s.Equal("https://wa.me/5511999990000?text=pedido", body["deep_link"])
		s.InDelta(40.0, body["total"], 0.001)
		s.InDelta(2.0, body["cashback"], 0.001)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: customer_name", mutate: testutil.Field("customer_name", nil)},
			{name: "missing field: customer_contact", mutate: testutil.Field("customer_contact", nil)},
			{name: "empty customer_name", mutate: testutil.Field("customer_name", "")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, s.sessionID)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "customer validation",
				commandsError:  errs.ErrCustomerValidation,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid customer details",
			},
			{
				name:           "empty cart",
				commandsError:  errs.ErrEmptyCart,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Cart is empty",
			},
			{
				name:           "submission in progress",
				commandsError:  errs.ErrSubmissionInProgress,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already in progress",
			},
			{
				name:           "concurrent ledger modification",
				commandsError:  errs.ErrConcurrentModification,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "changed concurrently",
			},
			{
				name:           "ledger unavailable",
				commandsError:  errs.ErrLedgerUnavailable,
				expectedStatus: http.StatusBadGateway,
				expectedMsg:    "cart was kept",
			},
			{
				name:           "internal error",
				commandsError:  errors.New("boom"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().
					Submit(gomock.Any(), gomock.Any(), "Maria Silva", "(11) 99999-0000").
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.sessionID)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
