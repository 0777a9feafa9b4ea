package security

import (
	"crypto/sha256"
	"encoding/hex"
)

// Password 计算落库用的口令摘要：passcode 是注册时发的每用户盐，
// 同样的明文在不同账号下摘要不同。
func Password(pwd, passcode string) string {
	sum := sha256.Sum256([]byte(pwd + ":" + passcode))
	return hex.EncodeToString(sum[:])
}
