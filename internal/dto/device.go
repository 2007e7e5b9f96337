package dto

import (
	"github.com/goldvault/goldvault/internal/core/moneymath"
	"github.com/goldvault/goldvault/internal/device"
)

// DeviceStatusResponse reports the current state of a serial peripheral.
type DeviceStatusResponse struct {
	State    string `json:"state"`
	Advisory string `json:"advisory,omitempty"`
}

// ScaleStatusResponse reports the scale state together with the last
// stable weight it published.
type ScaleStatusResponse struct {
	DeviceStatusResponse
	WeightGrams string `json:"weightGrams"`
}

// RFIDStatusResponse reports the RFID reader state together with the
// accumulated set of distinct tags.
type RFIDStatusResponse struct {
	DeviceStatusResponse
	Tags []string `json:"tags"`
}

// ToDeviceStatusResponse converts reader state to DeviceStatusResponse.
func ToDeviceStatusResponse(r *device.Reader) DeviceStatusResponse {
	return DeviceStatusResponse{
		State:    string(r.State()),
		Advisory: r.Advisory(),
	}
}

// ToScaleStatusResponse converts a scale reader to ScaleStatusResponse.
func ToScaleStatusResponse(r *device.Reader) ScaleStatusResponse {
	return ScaleStatusResponse{
		DeviceStatusResponse: ToDeviceStatusResponse(r),
		WeightGrams:          moneymath.ToFixed(r.Weight(), 2),
	}
}

// ToRFIDStatusResponse converts an RFID reader to RFIDStatusResponse.
func ToRFIDStatusResponse(r *device.Reader) RFIDStatusResponse {
	tags := r.Tags()
	if tags == nil {
		tags = []string{}
	}
	return RFIDStatusResponse{
		DeviceStatusResponse: ToDeviceStatusResponse(r),
		Tags:                 tags,
	}
}
