package models

// ResolutionResult kết quả resolve một địa chỉ. Field cấp hành chính rỗng
// nghĩa là cấp đó không resolve được — đây là kết quả hợp lệ trả về caller,
// không phải lỗi.
type ResolutionResult struct {
	Raw              string `json:"raw"`               // Địa chỉ gốc
	Normalized       string `json:"normalized"`        // Địa chỉ sau chuẩn hóa
	Remainder        string `json:"remainder"`         // Phần còn lại (số nhà, tên đường)
	Province         string `json:"province"`          // Tên tỉnh/thành phố chuẩn
	District         string `json:"district"`          // Tên quận/huyện chuẩn
	Ward             string `json:"ward"`              // Tên phường/xã chuẩn
	Assembled        string `json:"assembled"`         // Chuỗi địa chỉ đã ráp lại
	GazetteerVersion string `json:"gazetteer_version"` // Phiên bản gazetteer dùng để resolve
	Fingerprint      string `json:"fingerprint"`       // Khóa cache của kết quả
}

// Assemble ráp chuỗi địa chỉ cuối cùng theo format cố định
// "<remainder> <ward>, <district>, <province>". Cấu trúc phẩy/space
// giữ nguyên kể cả khi có segment rỗng, để output test được byte-for-byte.
func Assemble(remainder, ward, district, province string) string {
	return remainder + " " + ward + ", " + district + ", " + province
}

// IsResolved có ít nhất một cấp hành chính được resolve
func (rr *ResolutionResult) IsResolved() bool {
	return rr.Province != "" || rr.District != "" || rr.Ward != ""
}
