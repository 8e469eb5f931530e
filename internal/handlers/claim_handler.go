package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/family_treasury/internal/core/ports/services"
	"github.com/SscSPs/family_treasury/internal/dto"
	"github.com/SscSPs/family_treasury/internal/middleware"
	"github.com/gin-gonic/gin"
)

// claimHandler handles HTTP requests related to claims and voting.
type claimHandler struct {
	claimService    portssvc.ClaimReaderSvc
	governorService portssvc.TreasuryGovernorSvc
}

// newClaimHandler creates a new claimHandler.
func newClaimHandler(cs portssvc.ClaimReaderSvc, gs portssvc.TreasuryGovernorSvc) *claimHandler {
	return &claimHandler{
		claimService:    cs,
		governorService: gs,
	}
}

// registerClaimRoutes registers routes related to claims. Listing a pool's claims lives
// under the pool routes.
func registerClaimRoutes(rg *gin.RouterGroup, claimService portssvc.ClaimReaderSvc, governorService portssvc.TreasuryGovernorSvc) {
	h := newClaimHandler(claimService, governorService)

	claims := rg.Group("/claims")
	{
		claims.POST("", h.submitClaim)
	}

	claimSpecific := rg.Group("/claims/:claim_id")
	{
		claimSpecific.GET("", h.getClaim)
		claimSpecific.GET("/votes", h.listVotes)
		claimSpecific.POST("/vote", h.castVote)
		claimSpecific.POST("/settle", h.retrySettlement)
	}
}

// submitClaim godoc
// @Summary Submit a claim
// @Description Opens a PENDING claim against the caller's pool. No funds move until the claim is approved.
// @Tags claims
// @Accept  json
// @Produce  json
// @Param   claim body dto.SubmitClaimRequest true "Claim details"
// @Success 201 {object} dto.ClaimResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member of this pool"
// @Failure 404 {object} map[string]string "Pool not found"
// @Failure 500 {object} map[string]string "Failed to submit claim"
// @Security BearerAuth
// @Router /claims [post]
func (h *claimHandler) submitClaim(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitClaim", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requesterID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Requester member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("pool_id", req.PoolID))
	logger.Info("Received request to submit claim", slog.String("amount", req.Amount.String()))

	claim, err := h.governorService.SubmitClaim(c.Request.Context(), req, requesterID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to submit claim")
		return
	}

	logger.Info("Claim submitted successfully", slog.String("claim_id", claim.ClaimID))
	c.JSON(http.StatusCreated, dto.ToClaimResponse(claim))
}

// getClaim godoc
// @Summary Get a claim
// @Tags claims
// @Produce  json
// @Param   claim_id path string true "Claim ID"
// @Success 200 {object} dto.ClaimResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member of the claim's pool"
// @Failure 404 {object} map[string]string "Claim not found"
// @Failure 500 {object} map[string]string "Failed to get claim"
// @Security BearerAuth
// @Router /claims/{claim_id} [get]
func (h *claimHandler) getClaim(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	claimID := c.Param("claim_id")

	memberID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	claim, err := h.claimService.GetClaim(c.Request.Context(), claimID, memberID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("claim_id", claimID)), err, "Failed to get claim")
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// listVotes godoc
// @Summary List the ballots on a claim
// @Tags claims
// @Produce  json
// @Param   claim_id path string true "Claim ID"
// @Success 200 {array} dto.VoteResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member of the claim's pool"
// @Failure 404 {object} map[string]string "Claim not found"
// @Failure 500 {object} map[string]string "Failed to list votes"
// @Security BearerAuth
// @Router /claims/{claim_id}/votes [get]
func (h *claimHandler) listVotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	claimID := c.Param("claim_id")

	memberID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	votes, err := h.claimService.ListVotes(c.Request.Context(), claimID, memberID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("claim_id", claimID)), err, "Failed to list votes")
		return
	}

	c.JSON(http.StatusOK, dto.ToVoteResponses(votes))
}

// castVote godoc
// @Summary Vote on a claim
// @Description Records a ballot. Reaching the approval threshold settles the claim in the same request.
// @Tags claims
// @Accept  json
// @Produce  json
// @Param   claim_id path string true "Claim ID"
// @Param   vote body dto.CastVoteRequest true "Ballot"
// @Success 200 {object} dto.VoteResultResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Claim not found"
// @Failure 409 {object} map[string]string "Claim already finalized or member already voted"
// @Failure 422 {object} map[string]string "Vote recorded, pool balance too low to settle"
// @Failure 502 {object} map[string]string "Vote recorded, settlement could not be recorded"
// @Failure 500 {object} map[string]string "Failed to cast vote"
// @Security BearerAuth
// @Router /claims/{claim_id}/vote [post]
func (h *claimHandler) castVote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	claimID := c.Param("claim_id")

	var req dto.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CastVote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	memberID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Voting member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("claim_id", claimID))
	logger.Info("Received vote", slog.Bool("decision", *req.Decision))

	result, err := h.governorService.CastVote(c.Request.Context(), claimID, *req.Decision, memberID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to cast vote")
		return
	}

	c.JSON(http.StatusOK, dto.ToVoteResultResponse(result))
}

// retrySettlement godoc
// @Summary Retry settlement of an approved claim
// @Description Settles a claim left APPROVED after a failed settlement. Members only.
// @Tags claims
// @Produce  json
// @Param   claim_id path string true "Claim ID"
// @Success 200 {object} dto.VoteResultResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member of the claim's pool"
// @Failure 404 {object} map[string]string "Claim not found"
// @Failure 409 {object} map[string]string "Claim is not awaiting settlement"
// @Failure 422 {object} map[string]string "Pool balance too low to settle"
// @Failure 502 {object} map[string]string "Settlement could not be recorded"
// @Failure 500 {object} map[string]string "Failed to settle claim"
// @Security BearerAuth
// @Router /claims/{claim_id}/settle [post]
func (h *claimHandler) retrySettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	claimID := c.Param("claim_id")

	memberID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("claim_id", claimID))
	logger.Info("Received request to retry settlement")

	result, err := h.governorService.RetrySettlement(c.Request.Context(), claimID, memberID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to settle claim")
		return
	}

	c.JSON(http.StatusOK, dto.ToVoteResultResponse(result))
}
