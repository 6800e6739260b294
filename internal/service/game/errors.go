package game

import "errors"

// 引擎层的错误分类。所有可预期的失败都必须包裹其中之一，
// API 层通过 errors.Is 映射到 HTTP 状态码。
var (
	// ErrNotFound 表示局、玩家、中央牌或目标不存在
	ErrNotFound = errors.New("目标不存在")

	// ErrInvalidConfiguration 表示建局参数非法（角色数与玩家数不匹配等）
	ErrInvalidConfiguration = errors.New("对局配置非法")

	// ErrWrongPhase 表示操作发生在错误的阶段
	ErrWrongPhase = errors.New("当前阶段不允许该操作")

	// ErrNotCurrentStep 表示夜间行动对应的角色不是当前唤醒步骤
	ErrNotCurrentStep = errors.New("当前不是该角色的行动轮次")

	// ErrNotAuthorized 表示调用者的初始角色与该步骤不符
	ErrNotAuthorized = errors.New("无权执行该角色的行动")

	// ErrAlreadyActed 表示一次性夜间行动被重复执行
	ErrAlreadyActed = errors.New("该行动已经执行过")

	// ErrAlreadyVoted 表示玩家重复投票
	ErrAlreadyVoted = errors.New("你已投票，不能重复投票")

	// ErrInvalidTarget 表示目标非法（指向自己、重复下标、越界等）
	ErrInvalidTarget = errors.New("行动目标非法")
)
