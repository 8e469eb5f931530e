package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/family_treasury/internal/core/ports/services"
	"github.com/SscSPs/family_treasury/internal/dto"
	"github.com/SscSPs/family_treasury/internal/middleware"
	"github.com/gin-gonic/gin"
)

// poolHandler handles HTTP requests related to pools.
type poolHandler struct {
	poolService  portssvc.PoolSvcFacade
	claimService portssvc.ClaimSvcFacade
}

// newPoolHandler creates a new poolHandler.
func newPoolHandler(ps portssvc.PoolSvcFacade, cs portssvc.ClaimSvcFacade) *poolHandler {
	return &poolHandler{
		poolService:  ps,
		claimService: cs,
	}
}

// registerPoolRoutes registers routes related to pools, their ledger and their claims.
func registerPoolRoutes(rg *gin.RouterGroup, poolService portssvc.PoolSvcFacade, claimService portssvc.ClaimSvcFacade) {
	h := newPoolHandler(poolService, claimService)

	pools := rg.Group("/pools")
	{
		pools.POST("", h.createPool)
		pools.GET("/mine", h.getMyPool)
	}

	poolSpecific := rg.Group("/pools/:pool_id")
	{
		poolSpecific.GET("", h.getPool)
		poolSpecific.POST("/join", h.joinPool)
		poolSpecific.POST("/fund", h.fundPool)
		poolSpecific.GET("/ledger", h.listLedger)
		poolSpecific.GET("/claims", h.listClaims)
	}
}

// createPool godoc
// @Summary Create a new pool
// @Description Creates a pool with the caller as its founding member. A member may belong to one pool only.
// @Tags pools
// @Accept  json
// @Produce  json
// @Param   pool body dto.CreatePoolRequest true "Pool details"
// @Success 201 {object} dto.PoolResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Caller already belongs to a pool"
// @Failure 500 {object} map[string]string "Failed to create pool"
// @Security BearerAuth
// @Router /pools [post]
func (h *poolHandler) createPool(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePool", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	founderID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Founder member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to create pool", slog.String("pool_name", req.Name))

	pool, err := h.poolService.CreatePool(c.Request.Context(), req, founderID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create pool")
		return
	}

	logger.Info("Pool created successfully", slog.String("pool_id", pool.PoolID))
	c.JSON(http.StatusCreated, dto.ToPoolResponse(pool))
}

// getMyPool godoc
// @Summary Get the caller's pool
// @Tags pools
// @Produce  json
// @Success 200 {object} dto.PoolResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Caller does not belong to a pool"
// @Failure 500 {object} map[string]string "Failed to get pool"
// @Security BearerAuth
// @Router /pools/mine [get]
func (h *poolHandler) getMyPool(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	memberID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	pool, err := h.poolService.GetPoolForMember(c.Request.Context(), memberID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get pool")
		return
	}
	if pool == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "You do not belong to a pool"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPoolResponse(pool))
}

// getPool godoc
// @Summary Get a pool
// @Description Retrieves a pool and its current balance. Members only.
// @Tags pools
// @Produce  json
// @Param   pool_id path string true "Pool ID"
// @Success 200 {object} dto.PoolResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member of this pool"
// @Failure 404 {object} map[string]string "Pool not found"
// @Failure 500 {object} map[string]string "Failed to get pool"
// @Security BearerAuth
// @Router /pools/{pool_id} [get]
func (h *poolHandler) getPool(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	poolID := c.Param("pool_id")

	memberID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("pool_id", poolID))

	if err := h.poolService.AuthorizeMember(c.Request.Context(), memberID, poolID); err != nil {
		respondWithError(c, logger, err, "Failed to get pool")
		return
	}

	pool, err := h.poolService.GetPool(c.Request.Context(), poolID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get pool")
		return
	}

	c.JSON(http.StatusOK, dto.ToPoolResponse(pool))
}

// joinPool godoc
// @Summary Join a pool
// @Tags pools
// @Produce  json
// @Param   pool_id path string true "Pool ID"
// @Success 200 {object} dto.PoolResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Pool not found"
// @Failure 409 {object} map[string]string "Caller already belongs to a pool"
// @Failure 500 {object} map[string]string "Failed to join pool"
// @Security BearerAuth
// @Router /pools/{pool_id}/join [post]
func (h *poolHandler) joinPool(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	poolID := c.Param("pool_id")

	memberID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Joining member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("pool_id", poolID))
	logger.Info("Received request to join pool")

	pool, err := h.poolService.JoinPool(c.Request.Context(), poolID, memberID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to join pool")
		return
	}

	logger.Info("Member joined pool", slog.Int("member_count", len(pool.MemberIDs)))
	c.JSON(http.StatusOK, dto.ToPoolResponse(pool))
}

// fundPool godoc
// @Summary Contribute to a pool
// @Description Credits the pool balance and appends a CONTRIBUTION ledger entry.
// @Tags pools
// @Accept  json
// @Produce  json
// @Param   pool_id path string true "Pool ID"
// @Param   contribution body dto.FundPoolRequest true "Contribution"
// @Success 200 {object} dto.PoolResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Pool not found"
// @Failure 500 {object} map[string]string "Failed to fund pool"
// @Security BearerAuth
// @Router /pools/{pool_id}/fund [post]
func (h *poolHandler) fundPool(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	poolID := c.Param("pool_id")

	var req dto.FundPoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for FundPool", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	memberID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Contributor member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("pool_id", poolID))
	logger.Info("Received request to fund pool", slog.String("amount", req.Amount.String()))

	pool, err := h.poolService.Fund(c.Request.Context(), poolID, req, memberID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to fund pool")
		return
	}

	c.JSON(http.StatusOK, dto.ToPoolResponse(pool))
}

// listLedger godoc
// @Summary List a pool's ledger
// @Description Lists contributions and payouts, newest first. Members only.
// @Tags pools
// @Produce  json
// @Param   pool_id path string true "Pool ID"
// @Param   limit query int false "Maximum entries to return" default(50)
// @Success 200 {array} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member of this pool"
// @Failure 500 {object} map[string]string "Failed to list ledger"
// @Security BearerAuth
// @Router /pools/{pool_id}/ledger [get]
func (h *poolHandler) listLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	poolID := c.Param("pool_id")

	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	memberID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("pool_id", poolID))

	entries, err := h.poolService.ListLedger(c.Request.Context(), poolID, memberID, params.Limit)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEntryResponses(entries))
}

// listClaims godoc
// @Summary List a pool's claims
// @Description Lists claims newest first using token based pagination. Members only.
// @Tags claims
// @Produce  json
// @Param   pool_id path string true "Pool ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListClaimsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member of this pool"
// @Failure 500 {object} map[string]string "Failed to list claims"
// @Security BearerAuth
// @Router /pools/{pool_id}/claims [get]
func (h *poolHandler) listClaims(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	poolID := c.Param("pool_id")

	var params dto.ListClaimsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListClaims", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	memberID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("pool_id", poolID))

	claims, nextToken, err := h.claimService.ListClaimsForPool(c.Request.Context(), poolID, memberID, params.Limit, params.NextToken)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list claims")
		return
	}

	c.JSON(http.StatusOK, dto.ToListClaimsResponse(claims, nextToken))
}
