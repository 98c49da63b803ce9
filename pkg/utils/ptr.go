package utils

func Uint64Ptr(v uint64) *uint64 { return &v }
