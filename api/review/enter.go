package review

type Review struct{}
