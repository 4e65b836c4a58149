package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SearchParams are the query parameters of GET /search.
type SearchParams struct {
	Query string `form:"q"`
	Limit int    `form:"limit"` // 0 or absent: no limit beyond the configured maximum
}

// SearchHandler ranks the pictograms matching a keyword. An empty keyword
// is not an error; it simply matches nothing.
func (api *API) SearchHandler(c *gin.Context) {
	var params SearchParams
	if result := ValidateQueryBinding(c, &params); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateLimit(params.Limit); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	result, err := api.pipeline.Search(params.Query, params.Limit)
	if err != nil {
		SendPipelineError(c, "search", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PictogramHandler returns a lexicon entry and the location of its asset.
func (api *API) PictogramHandler(c *gin.Context) {
	identifier := c.Param("id")
	if result := ValidateIdentifier(identifier); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	pictogram, err := api.pipeline.Pictogram(identifier)
	if err != nil {
		SendPipelineError(c, "pictogram lookup", err)
		return
	}
	c.JSON(http.StatusOK, pictogram)
}
