package partner

type Partner struct{}
