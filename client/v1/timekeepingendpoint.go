package v1

import "context"

// TimekeepingRecordDTO is the entry posted after a successful photo
// upload. Status is the new status being recorded, not the last one.
type TimekeepingRecordDTO struct {
	Status   string `json:"status"`
	Date     string `json:"date"` // dd/MM/yyyy
	Time     string `json:"time"` // HH:mm:ss
	Location string `json:"location"`
	ImageURL string `json:"imageURL"`
}

type TimekeepingEndpoint struct {
	transport *Transport
}

func (e *TimekeepingEndpoint) Save(ctx context.Context, dto *TimekeepingRecordDTO) error {
	_, err := e.transport.Post(ctx, "/timekeeping", dto, nil)
	return err
}
