package visit

type Visit struct{}
