package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SscSPs/family_treasury/internal/apperrors"
	"github.com/SscSPs/family_treasury/internal/core/domain"
	"github.com/SscSPs/family_treasury/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestSubmitClaim() {
	claim := &domain.Claim{
		ClaimID:           "c1",
		PoolID:            "p1",
		RequesterMemberID: "bayo",
		Amount:            decimal.NewFromInt(3000),
		Reason:            "hospital bill",
		Status:            domain.ClaimPending,
	}
	suite.mockGovernorService.On("SubmitClaim", mock.Anything, mock.MatchedBy(func(req dto.SubmitClaimRequest) bool {
		return req.PoolID == "p1" && req.Amount.Equal(decimal.NewFromInt(3000)) && len(req.AttachmentRefs) == 1
	}), "bayo").Return(claim, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/claims", "bayo", map[string]any{
		"poolID":         "p1",
		"amount":         "3000",
		"reason":         "hospital bill",
		"attachmentRefs": []string{"ipfs://receipt"},
	})
	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ClaimResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("c1", resp.ClaimID)
	suite.Equal("PENDING", resp.Status)
	suite.mockGovernorService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestSubmitClaim_Validation() {
	cases := []map[string]any{
		{"poolID": "p1", "reason": "no amount"},
		{"poolID": "p1", "amount": "0", "reason": "zero"},
		{"poolID": "p1", "amount": "0.000001", "reason": "dust"},
		{"poolID": "p1", "amount": "10000000000000000", "reason": "too large"},
		{"poolID": "p1", "amount": "10"},
		{"amount": "10", "reason": "no pool"},
		{"poolID": "p1", "amount": "10", "reason": "blank ref", "attachmentRefs": []string{""}},
	}
	for i, body := range cases {
		w := suite.do(http.MethodPost, "/api/v1/claims", "bayo", body)
		suite.Equal(http.StatusBadRequest, w.Code, "case %d", i)
	}

	suite.mockGovernorService.On("SubmitClaim", mock.Anything, mock.Anything, "outsider").Return(nil, apperrors.ErrNotAMember).Once()
	w := suite.do(http.MethodPost, "/api/v1/claims", "outsider", map[string]any{"poolID": "p1", "amount": "10", "reason": "x"})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestGetClaimAndVotes() {
	suite.mockClaimService.On("GetClaim", mock.Anything, "c1", "ada").Return(&domain.Claim{ClaimID: "c1", Status: domain.ClaimApproved}, nil).Once()
	suite.mockClaimService.On("GetClaim", mock.Anything, "nope", "ada").Return(nil, apperrors.ErrClaimNotFound).Once()
	suite.mockClaimService.On("ListVotes", mock.Anything, "c1", "ada").Return([]domain.Vote{
		{VoteID: "v1", ClaimID: "c1", MemberID: "ada", Decision: true},
		{VoteID: "v2", ClaimID: "c1", MemberID: "bayo", Decision: false},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/claims/c1", "ada", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/claims/nope", "ada", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/claims/c1/votes", "ada", nil)
	suite.Equal(http.StatusOK, w.Code)
	var votes []dto.VoteResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &votes))
	suite.Require().Len(votes, 2)
	suite.False(votes[1].Decision)
	suite.mockClaimService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCastVote_DecisionIsRequired() {
	w := suite.do(http.MethodPost, "/api/v1/claims/c1/vote", "ada", map[string]any{})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockGovernorService.AssertNotCalled(suite.T(), "CastVote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCastVote_ExplicitFalse() {
	claim := &domain.Claim{ClaimID: "c1", Status: domain.ClaimPending, VotesAgainst: 1}
	suite.mockGovernorService.On("CastVote", mock.Anything, "c1", false, "ada").
		Return(&domain.VoteResult{Status: domain.OutcomeVoted, Message: "Vote recorded", Claim: claim}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/claims/c1/vote", "ada", map[string]any{"decision": false})
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.VoteResultResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("VOTED", resp.Status)
	suite.Equal(1, resp.Claim.VotesAgainst)
	suite.mockGovernorService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCastVote_ErrorMapping() {
	cases := []struct {
		err    error
		status int
	}{
		{apperrors.ErrClaimNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: claim c1 is PAID", apperrors.ErrClaimFinalized), http.StatusConflict},
		{apperrors.ErrAlreadyVoted, http.StatusConflict},
		{apperrors.ErrNotAMember, http.StatusForbidden},
		{fmt.Errorf("vote recorded and claim c1 approved, settlement pending: %w", apperrors.ErrInsufficientFunds), http.StatusUnprocessableEntity},
		{fmt.Errorf("vote recorded and claim c1 approved, settlement pending: %w: rpc timeout", apperrors.ErrSettlementFailed), http.StatusBadGateway},
	}
	for _, tc := range cases {
		suite.mockGovernorService.On("CastVote", mock.Anything, "c1", true, "ada").Return(nil, tc.err).Once()

		w := suite.do(http.MethodPost, "/api/v1/claims/c1/vote", "ada", map[string]any{"decision": true})
		suite.Equal(tc.status, w.Code, tc.err.Error())
		suite.Equal(tc.err.Error(), suite.errorBody(w))
	}
}

func (suite *HandlerTestSuite) TestRetrySettlement() {
	ref := "0xabc"
	paid := &domain.Claim{ClaimID: "c1", Status: domain.ClaimPaid, SettlementReference: &ref}
	suite.mockGovernorService.On("RetrySettlement", mock.Anything, "c1", "ada").
		Return(&domain.VoteResult{Status: domain.OutcomePaid, Message: "Claim approved and paid 3000.00 NGN", Claim: paid}, nil).Once()
	suite.mockGovernorService.On("RetrySettlement", mock.Anything, "c2", "ada").
		Return(nil, fmt.Errorf("%w: claim c2 is PENDING", apperrors.ErrClaimFinalized)).Once()

	w := suite.do(http.MethodPost, "/api/v1/claims/c1/settle", "ada", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.VoteResultResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("PAID", resp.Status)
	suite.Require().NotNil(resp.Claim.SettlementReference)
	suite.Equal(ref, *resp.Claim.SettlementReference)

	w = suite.do(http.MethodPost, "/api/v1/claims/c2/settle", "ada", nil)
	suite.Equal(http.StatusConflict, w.Code)
	suite.mockGovernorService.AssertExpectations(suite.T())
}
