//go:build unit

package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"vitrine-engine/internal/domain/cart"
	"vitrine-engine/internal/domain/coupon"
	"vitrine-engine/internal/handler/api"
	"vitrine-engine/internal/handler/middleware"
	"vitrine-engine/internal/pkg/errs"
	"vitrine-engine/internal/usecase/queries"
	"vitrine-engine/tests/common/httptest"
	"vitrine-engine/tests/common/testutil"
	commandsmock "vitrine-engine/tests/mock/commands"
	queriesmock "vitrine-engine/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CartHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCartCommands
	mockQueries  *queriesmock.MockCartQueries
	handler      *api.CartHandler
	sessionID    string
}

func (s *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCartCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCartQueries(s.mockCtrl)
	s.handler = api.NewCartHandler(s.mockCommands, s.mockQueries)
	s.sessionID = uuid.New().String()

	s.router.Use(middleware.SessionMiddleware())
	s.router.GET("/cart", s.handler.GetCart)
	s.router.DELETE("/cart", s.handler.ClearCart)
	s.router.POST("/cart/items", s.handler.AddItem)
	s.router.PATCH("/cart/items/:id", s.handler.SetQuantity)
	s.router.DELETE("/cart/items/:id", s.handler.RemoveItem)
	s.router.POST("/cart/coupon", s.handler.ApplyCoupon)
	s.router.DELETE("/cart/coupon", s.handler.RemoveCoupon)
}

func (s *CartHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

func cartView() *queries.CartView {
	code := "SAVE10"
	return &queries.CartView{
		Items: []*queries.CartItemView{
			{ProductID: 1, Name: "Camiseta", UnitPriceCents: 2000, Quantity: 2, SubtotalCents: 4000},
		},
		SubtotalCents: 4000,
		DiscountCents: 400,
		TotalCents:    3600,
		CashbackCents: 200,
		CouponCode:    &code,
		State:         "IDLE",
	}
}

// ================================================================================
// TestGetCart
// ================================================================================

func (s *CartHandlerTestSuite) TestGetCart() {
	s.Run("success: returns 200 with the cart in decimal currency", func() {
		s.mockQueries.EXPECT().GetCart(gomock.Any(), gomock.Any()).Return(cartView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart", nil, s.sessionID)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.InDelta(40.0, body["subtotal"], 0.001)
		s.InDelta(36.0, body["total"], 0.001)
		s.InDelta(2.0, body["cashback"], 0.001)
		s.Equal("SAVE10", body["coupon_code"])
		s.Equal("IDLE", body["state"])
	})

	s.Run("success: absent session header still gets a cart", func() {
		s.mockQueries.EXPECT().GetCart(gomock.Any(), gomock.Any()).Return(cartView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.NotEmpty(rec.Header().Get(middleware.SessionHeader))
	})

	s.Run("error: 500 on query failure", func() {
		s.mockQueries.EXPECT().GetCart(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("session store broken")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart", nil, s.sessionID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestAddItem
// ================================================================================

func (s *CartHandlerTestSuite) TestAddItem() {
	url := "/cart/items"
	reqBody := map[string]any{"product_id": 1, "quantity": 2}

	s.Run("success: returns 200 with the refreshed cart", func() {
		s.mockCommands.EXPECT().AddItem(gomock.Any(), gomock.Any(), int64(1), 2).
			Return(cartView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.sessionID)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: product_id", mutate: testutil.Field("product_id", nil)},
			{name: "missing field: quantity", mutate: testutil.Field("quantity", nil)},
			{name: "quantity below minimum (0)", mutate: testutil.Field("quantity", 0)},
			{name: "quantity not a number", mutate: testutil.Field("quantity", "dois")},
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
				name:           "product not found",
				commandsError:  errs.ErrProductNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Product not found",
			},
			{
				name:           "insufficient stock",
				commandsError:  errs.Mark(&cart.InsufficientStockError{Available: 1}, errs.ErrInsufficientStock),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Insufficient stock",
			},
			{
				name:           "submission in progress",
				commandsError:  errs.ErrSubmissionInProgress,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Submission in progress",
			},
			{
				name:           "catalog unavailable",
				commandsError:  errs.ErrCatalogUnavailable,
				expectedStatus: http.StatusServiceUnavailable,
				expectedMsg:    "Catalog temporarily unavailable",
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
				s.mockCommands.EXPECT().AddItem(gomock.Any(), gomock.Any(), int64(1), 2).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.sessionID)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("error: insufficient stock carries the available quantity", func() {
		s.mockCommands.EXPECT().AddItem(gomock.Any(), gomock.Any(), int64(1), 2).
			Return(nil, errs.Mark(&cart.InsufficientStockError{Available: 1}, errs.ErrInsufficientStock)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.sessionID)

		s.Equal(http.StatusConflict, rec.Code)
		var body map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.InDelta(1.0, body["available"], 0.001)
	})
}

// ================================================================================
// TestSetQuantityAndRemoveItem
// ================================================================================

func (s *CartHandlerTestSuite) TestSetQuantity() {
	s.Run("success: returns 200", func() {
		s.mockCommands.EXPECT().SetQuantity(gomock.Any(), gomock.Any(), int64(1), 5).
			Return(cartView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/cart/items/1",
			map[string]any{"quantity": 5}, s.sessionID)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: out-of-range quantities reach the clamp instead of failing validation", func() {
		for _, quantity := range []int{0, -3} {
			s.mockCommands.EXPECT().SetQuantity(gomock.Any(), gomock.Any(), int64(1), quantity).
				Return(cartView(), nil).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/cart/items/1",
				map[string]any{"quantity": quantity}, s.sessionID)
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		}
	})

	s.Run("error: 400 when quantity is absent", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/cart/items/1",
			map[string]any{}, s.sessionID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 400 on a non-numeric product id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/cart/items/abc",
			map[string]any{"quantity": 5}, s.sessionID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid product id")
	})

	s.Run("error: 400 on a non-positive product id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/cart/items/0",
			map[string]any{"quantity": 5}, s.sessionID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid product id")
	})
}

func (s *CartHandlerTestSuite) TestRemoveItem() {
	s.Run("success: returns 200", func() {
		s.mockCommands.EXPECT().RemoveItem(gomock.Any(), gomock.Any(), int64(1)).
			Return(cartView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart/items/1", nil, s.sessionID)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

func (s *CartHandlerTestSuite) TestClearCart() {
	s.Run("success: returns 200", func() {
		s.mockCommands.EXPECT().ClearCart(gomock.Any(), gomock.Any()).
			Return(&queries.CartView{Items: []*queries.CartItemView{}, State: "IDLE"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart", nil, s.sessionID)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body["items"])
	})
}

// ================================================================================
// TestCoupon
// ================================================================================

func (s *CartHandlerTestSuite) TestApplyCoupon() {
	url := "/cart/coupon"
	reqBody := map[string]any{"code": "SAVE10"}

	s.Run("success: returns 200 with the discount applied", func() {
		s.mockCommands.EXPECT().ApplyCoupon(gomock.Any(), gomock.Any(), "SAVE10").
			Return(cartView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.sessionID)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.InDelta(4.0, body["discount"], 0.001)
	})

	s.Run("error: 400 when the code is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, s.sessionID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: maps coupon errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "coupon not found",
				commandsError:  errs.ErrCouponNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Coupon not found",
			},
			{
				name:           "below minimum",
				commandsError:  errs.Mark(&coupon.BelowMinimumError{RequiredCents: 5000}, errs.ErrCouponBelowMinimum),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "below coupon minimum",
			},
			{
				name:           "expired",
				commandsError:  errs.ErrCouponExpired,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Coupon expired",
			},
			{
				name:           "usage limit reached",
				commandsError:  errs.ErrCouponExhaustedUsage,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "usage limit reached",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().ApplyCoupon(gomock.Any(), gomock.Any(), "SAVE10").
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.sessionID)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("error: below minimum carries the required value in decimal currency", func() {
		s.mockCommands.EXPECT().ApplyCoupon(gomock.Any(), gomock.Any(), "SAVE10").
			Return(nil, errs.Mark(&coupon.BelowMinimumError{RequiredCents: 5000}, errs.ErrCouponBelowMinimum)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.sessionID)

		s.Equal(http.StatusUnprocessableEntity, rec.Code)
		var body map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.InDelta(50.0, body["required"], 0.001)
	})
}

func (s *CartHandlerTestSuite) TestRemoveCoupon() {
	s.Run("success: returns 200", func() {
		view := cartView()
		view.CouponCode = nil
		view.DiscountCents = 0
		s.mockCommands.EXPECT().RemoveCoupon(gomock.Any(), gomock.Any()).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart/coupon", nil, s.sessionID)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.NotContains(body, "coupon_code")
	})
}
