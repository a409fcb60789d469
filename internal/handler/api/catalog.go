package api

import (
	"net/http"

	resdto "vitrine-engine/internal/handler/dto/response"
	"vitrine-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogQueries queries.CatalogQueries
}

func NewCatalogHandler(catalogQueries queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{
		catalogQueries: catalogQueries,
	}
}

// @Summary List catalog
// @Description List products with variants grouped under parents. When the backing source is unreachable the list is empty and a warning is set.
// @Tags catalog
// @Produce json
// @Success 200 {object} resdto.CatalogResponse
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	view, err := h.catalogQueries.ListCatalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCatalogView(view))
}
