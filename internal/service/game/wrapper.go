package game

import (
	"encoding/json"

	"go.uber.org/zap"
)

// 请求类型
const (
	REQ_ROUND_SNAPSHOT      = "RoundSnapshot"
	REQ_ROSTER              = "Roster"
	REQ_PLAYER_ROLE         = "PlayerRole"
	REQ_ACKNOWLEDGE_ROLE    = "AcknowledgeRole"
	REQ_NIGHT_STATUS        = "NightStatus"
	REQ_NIGHT_INFO          = "NightInfo"
	REQ_WEREWOLF_VIEW       = "WerewolfView"
	REQ_ACKNOWLEDGE         = "Acknowledge"
	REQ_SEER_ACTION         = "SeerAction"
	REQ_ROBBER_ACTION       = "RobberAction"
	REQ_TROUBLEMAKER_ACTION = "TroublemakerAction"
	REQ_DRUNK_ACTION        = "DrunkAction"
	REQ_AVAILABLE_ACTIONS   = "AvailableActions"
	REQ_ACTION_HISTORY      = "ActionHistory"
	REQ_DISCUSSION_STATUS   = "DiscussionStatus"
	REQ_VOTE_NOW            = "VoteNow"
	REQ_CAST_VOTE           = "CastVote"
	REQ_GET_VOTES           = "GetVotes"
	REQ_GET_RESULTS         = "GetResults"
	REQ_TIMEOUT             = "Timeout"
)

type RequestWrapper struct {
	ReqType string          `json:"request_type"`
	Data    json.RawMessage `json:"data"`
}

// WrapRequest 构造一个带载荷的请求信封，API 层使用
func WrapRequest(reqType string, payload any) RequestWrapper {
	return RequestWrapper{
		ReqType: reqType,
		Data:    mustMarshal(payload),
	}
}

func unwrapInto(wrapper RequestWrapper, reqType string, out any) bool {
	if wrapper.ReqType != reqType {
		return false
	}

	if err := json.Unmarshal(wrapper.Data, out); err != nil {
		zap.L().Error(
			"Failed to unwrap request payload",
			zap.Error(err),
			zap.String("request_type", wrapper.ReqType),
		)
		return false
	}

	return true
}

func TryUnwrapPlayerRoleRequest(wrapper RequestWrapper) *PlayerRoleRequest {
	var req PlayerRoleRequest
	if !unwrapInto(wrapper, REQ_PLAYER_ROLE, &req) {
		return nil
	}

	return &req
}

func TryUnwrapAcknowledgeRoleRequest(wrapper RequestWrapper) *AcknowledgeRoleRequest {
	var req AcknowledgeRoleRequest
	if !unwrapInto(wrapper, REQ_ACKNOWLEDGE_ROLE, &req) {
		return nil
	}

	return &req
}

func TryUnwrapNightInfoRequest(wrapper RequestWrapper) *NightInfoRequest {
	var req NightInfoRequest
	if !unwrapInto(wrapper, REQ_NIGHT_INFO, &req) {
		return nil
	}

	return &req
}

func TryUnwrapWerewolfViewRequest(wrapper RequestWrapper) *WerewolfViewRequest {
	var req WerewolfViewRequest
	if !unwrapInto(wrapper, REQ_WEREWOLF_VIEW, &req) {
		return nil
	}

	return &req
}

func TryUnwrapAcknowledgeRequest(wrapper RequestWrapper) *AcknowledgeRequest {
	var req AcknowledgeRequest
	if !unwrapInto(wrapper, REQ_ACKNOWLEDGE, &req) {
		return nil
	}

	return &req
}

func TryUnwrapSeerActionRequest(wrapper RequestWrapper) *SeerActionRequest {
	var req SeerActionRequest
	if !unwrapInto(wrapper, REQ_SEER_ACTION, &req) {
		return nil
	}

	return &req
}

func TryUnwrapRobberActionRequest(wrapper RequestWrapper) *RobberActionRequest {
	var req RobberActionRequest
	if !unwrapInto(wrapper, REQ_ROBBER_ACTION, &req) {
		return nil
	}

	return &req
}

func TryUnwrapTroublemakerActionRequest(wrapper RequestWrapper) *TroublemakerActionRequest {
	var req TroublemakerActionRequest
	if !unwrapInto(wrapper, REQ_TROUBLEMAKER_ACTION, &req) {
		return nil
	}

	return &req
}

func TryUnwrapDrunkActionRequest(wrapper RequestWrapper) *DrunkActionRequest {
	var req DrunkActionRequest
	if !unwrapInto(wrapper, REQ_DRUNK_ACTION, &req) {
		return nil
	}

	return &req
}

func TryUnwrapAvailableActionsRequest(wrapper RequestWrapper) *AvailableActionsRequest {
	var req AvailableActionsRequest
	if !unwrapInto(wrapper, REQ_AVAILABLE_ACTIONS, &req) {
		return nil
	}

	return &req
}

func TryUnwrapActionHistoryRequest(wrapper RequestWrapper) *ActionHistoryRequest {
	var req ActionHistoryRequest
	if !unwrapInto(wrapper, REQ_ACTION_HISTORY, &req) {
		return nil
	}

	return &req
}

func TryUnwrapDiscussionStatusRequest(wrapper RequestWrapper) *DiscussionStatusRequest {
	var req DiscussionStatusRequest
	if !unwrapInto(wrapper, REQ_DISCUSSION_STATUS, &req) {
		return nil
	}

	return &req
}

func TryUnwrapVoteNowRequest(wrapper RequestWrapper) *VoteNowRequest {
	var req VoteNowRequest
	if !unwrapInto(wrapper, REQ_VOTE_NOW, &req) {
		return nil
	}

	return &req
}

func TryUnwrapCastVoteRequest(wrapper RequestWrapper) *CastVoteRequest {
	var req CastVoteRequest
	if !unwrapInto(wrapper, REQ_CAST_VOTE, &req) {
		return nil
	}

	return &req
}

func TryUnwrapTimeoutRequest(wrapper RequestWrapper) *TimeoutRequest {
	var req TimeoutRequest
	if !unwrapInto(wrapper, REQ_TIMEOUT, &req) {
		return nil
	}

	return &req
}

// 响应类型
const (
	RESP_ERROR = "Error"

	RESP_ROUND_SNAPSHOT    = "RoundSnapshot"
	RESP_ROSTER            = "Roster"
	RESP_PLAYER_ROLE       = "PlayerRole"
	RESP_STATUS            = "Status"
	RESP_NIGHT_STATUS      = "NightStatus"
	RESP_NIGHT_INFO        = "NightInfo"
	RESP_VIEW_CARD         = "ViewCard"
	RESP_SEER_ACTION       = "SeerAction"
	RESP_ROBBER_ACTION     = "RobberAction"
	RESP_MESSAGE           = "Message"
	RESP_AVAILABLE_ACTIONS = "AvailableActions"
	RESP_ACTION_HISTORY    = "ActionHistory"
	RESP_DISCUSSION_STATUS = "DiscussionStatus"
	RESP_VOTE_NOW          = "VoteNow"
	RESP_VOTES             = "Votes"
	RESP_RESULTS           = "Results"
)

type ResponseWrapper struct {
	RespType string `json:"response_type"`
	Data     any    `json:"data"`
	ErrMsg   string `json:"error_message,omitempty"`
}

func WrapResponse(respType string, data any) ResponseWrapper {
	return ResponseWrapper{
		RespType: respType,
		Data:     data,
	}
}
