package utils

import (
	"crypto/md5"
	"encoding/hex"
)

// InList 判断元素是否在列表中
func InList(key string, list []string) bool {
	for _, s := range list {
		if s == key {
			return true
		}
	}
	return false
}

// Md5 计算字节内容的MD5值
func Md5(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
