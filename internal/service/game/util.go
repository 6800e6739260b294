package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"encoding/json"
	"math/rand/v2"

	"github.com/google/uuid"
)

// GenID 生成 8 位短 ID，用作局号和玩家号
func GenID() string {
	return uuid.New().String()[:8]
}

// NewRand 返回一个由 crypto/rand 播种的伪随机数生成器。
// 测试中可以自行构造固定种子的 rand.Rand 注入，实现确定性回放。
func NewRand() *rand.Rand {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic("Failed to seed rng: " + err.Error())
	}

	return rand.New(rand.NewPCG(
		binary.LittleEndian.Uint64(b[:8]),
		binary.LittleEndian.Uint64(b[8:]),
	))
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic("Failed to marshal: " + err.Error())
	}

	return data
}
