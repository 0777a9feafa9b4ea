package messages

type FailResp struct {
	Code    int
	Message string
}
