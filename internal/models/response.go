package models

import (
	"net/http"
	"time"
)

// ResponseModel Base response structure that can be reused
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// ResponseCurrentTime returns the current time in the milliseconds-since-epoch
// form every ResponseModel.CurrentTime field carries.
func ResponseCurrentTime() int64 {
	return time.Now().UnixMilli()
}

// NewResponse builds a ResponseModel around data with a "200 OK" envelope.
func NewResponse(data interface{}) ResponseModel {
	return ResponseModel{
		Code:        http.StatusOK,
		CurrentTime: ResponseCurrentTime(),
		Data:        data,
		Text:        "OK",
		Version:     2,
	}
}
