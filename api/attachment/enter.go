package attachment

type Attachment struct{}
