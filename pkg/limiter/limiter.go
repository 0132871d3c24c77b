package limiter

type Limiter interface {
	limiterSetup()
}
