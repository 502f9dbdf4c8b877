package collector

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/go-tangra/go-tangra-sysinfo/internal/extract"
	"github.com/go-tangra/go-tangra-sysinfo/internal/wmiquery"
)

// statusInfo decodes CIM StatusInfo codes. An absent code is -1, which
// decodes to "".
func statusInfo(key string) extract.Field[string] {
	return extract.New(key, "", func(raw any) (string, error) {
		n, err := extract.ToInt(raw)
		if err != nil {
			return "", err
		}
		return diskStatusInfo(n), nil
	})
}

var (
	driveName                    = extract.String("Name").Req()
	driveDeviceID                = extract.String("DeviceID").Req()
	driveModel                   = extract.String("Model").Req()
	driveManufacturer            = extract.String("Manufacturer").Req()
	driveSerialNumber            = extract.String("SerialNumber").Req().Then(strings.TrimSpace)
	driveStatus                  = extract.String("Status").Req()
	driveSystemCreationClassName = extract.String("SystemCreationClassName").Req()
	driveSystemName              = extract.String("SystemName").Req()
	driveStatusInfo              = statusInfo("StatusInfo")

	driveSize              = extract.Int64("Size")
	driveTotalCylinders    = extract.Int64("TotalCylinders")
	driveTotalHeads        = extract.Int64("TotalHeads")
	driveTotalSectors      = extract.Int64("TotalSectors")
	driveTotalTracks       = extract.Int64("TotalTracks")
	driveTracksPerCylinder = extract.Int("TracksPerCylinder")
	driveMediaSupported    = extract.Int("NumberOfMediaSupported")
	drivePartitions        = extract.Int("Partitions")
	// Signature is a uint32 and does not fit an int.
	driveSignature = extract.Int64("Signature")
)

func decodeDiskDrive(bag wmiquery.PropertyBag) (DiskDriveInfo, error) {
	d := extract.NewDecoder(bag)
	info := DiskDriveInfo{
		Name:                    extract.Value(d, driveName),
		DeviceID:                extract.Value(d, driveDeviceID),
		Model:                   extract.Value(d, driveModel),
		Manufacturer:            extract.Value(d, driveManufacturer),
		SerialNumber:            extract.Value(d, driveSerialNumber),
		Status:                  extract.Value(d, driveStatus),
		StatusInfo:              extract.Value(d, driveStatusInfo),
		SystemCreationClassName: extract.Value(d, driveSystemCreationClassName),
		SystemName:              extract.Value(d, driveSystemName),
		Size:                    extract.Value(d, driveSize),
		TotalCylinders:          extract.Value(d, driveTotalCylinders),
		TotalHeads:              extract.Value(d, driveTotalHeads),
		TotalSectors:            extract.Value(d, driveTotalSectors),
		TotalTracks:             extract.Value(d, driveTotalTracks),
		TracksPerCylinder:       extract.Value(d, driveTracksPerCylinder),
		NumberOfMediaSupported:  extract.Value(d, driveMediaSupported),
		Partitions:              extract.Value(d, drivePartitions),
		Signature:               extract.Value(d, driveSignature),
	}
	return info, d.Err()
}

// NewDiskDriveCollector returns the Win32_DiskDrive collector.
func NewDiskDriveCollector(q wmiquery.Querier, log zerolog.Logger) *RowCollector[DiskDriveInfo] {
	return newRowCollector(CategoryDiskDrives, ClassDiskDrive, q, decodeDiskDrive, log)
}

var (
	partName                    = extract.String("Name").Req()
	partDeviceID                = extract.String("DeviceID").Req()
	partType                    = extract.String("Type").Req()
	partStatus                  = extract.String("Status")
	partStatusInfo              = statusInfo("StatusInfo")
	partSystemCreationClassName = extract.String("SystemCreationClassName").Req()
	partSystemName              = extract.String("SystemName").Req()
	partSize                    = extract.Int64("Size")
	partNumberOfBlocks          = extract.Int64("NumberOfBlocks")
	partBootable                = extract.Bool("Bootable")
	partBootPartition           = extract.Bool("BootPartition")
	partPrimaryPartition        = extract.Bool("PrimaryPartition")
	partRewritePartition        = extract.Bool("RewritePartition")
)

func decodeDiskPartition(bag wmiquery.PropertyBag) (DiskPartitionInfo, error) {
	d := extract.NewDecoder(bag)
	info := DiskPartitionInfo{
		Name:                    extract.Value(d, partName),
		DeviceID:                extract.Value(d, partDeviceID),
		Type:                    extract.Value(d, partType),
		Status:                  extract.Value(d, partStatus),
		StatusInfo:              extract.Value(d, partStatusInfo),
		SystemCreationClassName: extract.Value(d, partSystemCreationClassName),
		SystemName:              extract.Value(d, partSystemName),
		Size:                    extract.Value(d, partSize),
		NumberOfBlocks:          extract.Value(d, partNumberOfBlocks),
		Bootable:                extract.Value(d, partBootable),
		BootPartition:           extract.Value(d, partBootPartition),
		PrimaryPartition:        extract.Value(d, partPrimaryPartition),
		RewritePartition:        extract.Value(d, partRewritePartition),
	}
	return info, d.Err()
}

// NewDiskPartitionCollector returns the Win32_DiskPartition collector.
func NewDiskPartitionCollector(q wmiquery.Querier, log zerolog.Logger) *RowCollector[DiskPartitionInfo] {
	return newRowCollector(CategoryDiskPartitions, ClassDiskPartition, q, decodeDiskPartition, log)
}
