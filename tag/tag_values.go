package tag

// Named tags, so callers can write tag.Rows instead of tag.New(0x0028,
// 0x0010). Keyword spelling follows DICOM Part 6's PS3.6 keyword column.
// Most have a TagDict entry; InstanceCreationDate, InstanceCreationTime,
// ContentDate, ContentTime, InstitutionName, InstitutionAddress,
// InstitutionalDepartmentName, PerformingPhysicianName and OperatorsName do
// not, so Find returns an error for them.
var (
	// File Meta Information (group 0002).
	FileMetaInformationGroupLength = New(0x0002, 0x0000)
	FileMetaInformationVersion     = New(0x0002, 0x0001)
	MediaStorageSOPClassUID        = New(0x0002, 0x0002)
	MediaStorageSOPInstanceUID     = New(0x0002, 0x0003)
	TransferSyntaxUID              = New(0x0002, 0x0010)
	ImplementationClassUID         = New(0x0002, 0x0012)
	ImplementationVersionName      = New(0x0002, 0x0013)
	SourceApplicationEntityTitle   = New(0x0002, 0x0016)

	// Patient / study / series identification.
	InstanceCreationDate        = New(0x0008, 0x0012)
	InstanceCreationTime        = New(0x0008, 0x0013)
	SOPClassUID                 = New(0x0008, 0x0016)
	SOPInstanceUID              = New(0x0008, 0x0018)
	StudyDate                   = New(0x0008, 0x0020)
	StudyTime                   = New(0x0008, 0x0030)
	ContentDate                 = New(0x0008, 0x0023)
	ContentTime                 = New(0x0008, 0x0033)
	AccessionNumber             = New(0x0008, 0x0050)
	Modality                    = New(0x0008, 0x0060)
	InstitutionName             = New(0x0008, 0x0080)
	InstitutionAddress          = New(0x0008, 0x0081)
	ReferringPhysicianName      = New(0x0008, 0x0090)
	CodeValue                   = New(0x0008, 0x0100)
	InstitutionalDepartmentName = New(0x0008, 0x1040)
	PerformingPhysicianName     = New(0x0008, 0x1050)
	OperatorsName               = New(0x0008, 0x1070)
	ReferencedSeriesSequence    = New(0x0008, 0x1115)
	ReferencedImageSequence     = New(0x0008, 0x1140)
	ReferencedSOPClassUID       = New(0x0008, 0x1150)
	ReferencedSOPInstanceUID    = New(0x0008, 0x1155)

	PatientName      = New(0x0010, 0x0010)
	PatientID        = New(0x0010, 0x0020)
	PatientBirthDate = New(0x0010, 0x0030)
	PatientSex       = New(0x0010, 0x0040)
	PatientAge       = New(0x0010, 0x1010)

	StudyInstanceUID  = New(0x0020, 0x000D)
	SeriesInstanceUID = New(0x0020, 0x000E)
	SeriesNumber      = New(0x0020, 0x0011)
	InstanceNumber    = New(0x0020, 0x0013)

	SpecificCharacterSet = New(0x0008, 0x0005)

	// Image pixel module (Part 3, Section C.7.6.3).
	SamplesPerPixel           = New(0x0028, 0x0002)
	PhotometricInterpretation = New(0x0028, 0x0004)
	PlanarConfiguration       = New(0x0028, 0x0006)
	NumberOfFrames            = New(0x0028, 0x0008)
	Rows                      = New(0x0028, 0x0010)
	Columns                   = New(0x0028, 0x0011)
	PixelSpacing              = New(0x0028, 0x0030)
	BitsAllocated             = New(0x0028, 0x0100)
	BitsStored                = New(0x0028, 0x0101)
	HighBit                   = New(0x0028, 0x0102)
	PixelRepresentation       = New(0x0028, 0x0103)
	SmallestImagePixelValue   = New(0x0028, 0x0106)
	LargestImagePixelValue    = New(0x0028, 0x0107)
	PixelPaddingValue         = New(0x0028, 0x0120)
	WindowCenter              = New(0x0028, 0x1050)
	WindowWidth               = New(0x0028, 0x1051)
	RescaleIntercept          = New(0x0028, 0x1052)
	RescaleSlope              = New(0x0028, 0x1053)
	LossyImageCompression     = New(0x0028, 0x2110)

	RedPaletteColorLookupTableDescriptor   = New(0x0028, 0x1101)
	GreenPaletteColorLookupTableDescriptor = New(0x0028, 0x1102)
	BluePaletteColorLookupTableDescriptor  = New(0x0028, 0x1103)
	LUTDescriptor                          = New(0x0028, 0x3002)

	SliceThickness = New(0x0018, 0x0050)
	SliceLocation  = New(0x0020, 0x1041)

	PixelData = New(0x7FE0, 0x0010)
)
