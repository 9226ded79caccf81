package workflow

type Workflow struct{}
