package collector

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/go-tangra/go-tangra-sysinfo/internal/extract"
	"github.com/go-tangra/go-tangra-sysinfo/internal/wmiquery"
)

const bytesPerMiB = 1024 * 1024

var (
	memName                 = extract.String("Name")
	memBankLabel            = extract.String("BankLabel")
	memDescription          = extract.String("Description")
	memDeviceLocator        = extract.String("DeviceLocator")
	memManufacturer         = extract.String("Manufacturer")
	memSerialNumber         = extract.String("SerialNumber").Req()
	memSKU                  = extract.String("SKU")
	memStatus               = extract.String("Status")
	memModel                = extract.String("Model")
	memOtherIdentifyingInfo = extract.String("OtherIdentifyingInfo")
	memPartNumber           = extract.String("PartNumber")
	memTag                  = extract.String("Tag")
	memVersion              = extract.String("Version")

	memCapacity      = extract.Int64("Capacity").Req()
	memDataWidth     = extract.Int("DataWidth").Req()
	memTotalWidth    = extract.Int("TotalWidth").Req()
	memSpeed         = extract.Int("Speed").Req()
	memSMBIOSType    = extract.Int("SMBIOSMemoryType").Req()
	memTypeDetail    = extract.Int("TypeDetail").Req()
	memPositionInRow = extract.Int("PositionInRow")
	memFormFactor    = extract.Enum("FormFactor", memoryFormFactorNames.lookup, MemoryFormFactorUnknown).Req()
)

func decodeMemoryBank(bag wmiquery.PropertyBag) (MemoryBankInfo, error) {
	d := extract.NewDecoder(bag)
	info := MemoryBankInfo{
		Name:                 extract.Value(d, memName),
		BankLabel:            extract.Value(d, memBankLabel),
		Description:          extract.Value(d, memDescription),
		DeviceLocator:        extract.Value(d, memDeviceLocator),
		Manufacturer:         extract.Value(d, memManufacturer),
		SerialNumber:         extract.Value(d, memSerialNumber),
		SKU:                  extract.Value(d, memSKU),
		Status:               extract.Value(d, memStatus),
		Model:                extract.Value(d, memModel),
		OtherIdentifyingInfo: extract.Value(d, memOtherIdentifyingInfo),
		PartNumber:           extract.Value(d, memPartNumber),
		Tag:                  extract.Value(d, memTag),
		Version:              extract.Value(d, memVersion),
		Capacity:             extract.Value(d, memCapacity),
		DataWidth:            extract.Value(d, memDataWidth),
		TotalWidth:           extract.Value(d, memTotalWidth),
		Speed:                extract.Value(d, memSpeed),
		SMBIOSMemoryType:     extract.Value(d, memSMBIOSType),
		TypeDetail:           extract.Value(d, memTypeDetail),
		PositionInRow:        extract.Value(d, memPositionInRow),
		FormFactor:           extract.Value(d, memFormFactor),
	}
	return info, d.Err()
}

// NewMemoryBankCollector returns the Win32_PhysicalMemory collector.
func NewMemoryBankCollector(q wmiquery.Querier, log zerolog.Logger) *RowCollector[MemoryBankInfo] {
	return newRowCollector(CategoryMemoryBanks, ClassPhysicalMemory, q, decodeMemoryBank, log)
}

// Summarize reduces bank records into a MemorySummary. DataWidth is taken
// from the first bank; zero banks give an all-zero summary.
func Summarize(banks []MemoryBankInfo) MemorySummary {
	s := MemorySummary{Banks: len(banks)}
	if len(banks) > 0 {
		s.DataWidth = banks[0].DataWidth
	}
	for _, b := range banks {
		s.TotalBytes += b.Capacity
	}
	s.TotalMiB = s.TotalBytes / bytesPerMiB
	return s
}

// MemorySummaryCollector derives the memory summary from the bank
// collector's records. It never queries on its own, so a bank dropped from
// the bank list is not counted either.
type MemorySummaryCollector struct {
	banks Collector[MemoryBankInfo]
}

// NewMemorySummaryCollector returns a summary collector over banks.
func NewMemorySummaryCollector(banks Collector[MemoryBankInfo]) *MemorySummaryCollector {
	return &MemorySummaryCollector{banks: banks}
}

// Collect reduces the decoded banks. A bank query failure is reported
// against the summary category.
func (c *MemorySummaryCollector) Collect(ctx context.Context) (*MemorySummary, error) {
	banks, err := c.banks.Collect(ctx)
	if err != nil {
		var qe *CategoryQueryError
		if errors.As(err, &qe) {
			return nil, &CategoryQueryError{Category: CategoryMemorySummary, Class: qe.Class, Err: qe.Err}
		}
		return nil, err
	}
	s := Summarize(banks)
	return &s, nil
}
