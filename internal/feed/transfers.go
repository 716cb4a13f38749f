package feed

// Transfer is an optional GTFS transfers.txt row. The planner's
// walk-fallback does not consume it (the fallback radius is purely
// geodesic), but it is still exposed as a read-only accessor on the Feed
// Store for ingestion completeness.
type Transfer struct {
	FromStopID      string
	ToStopID        string
	TransferType    int
	MinTransferTime int
}

func parseTransfers(t *table) ([]Transfer, error) {
	if t == nil {
		return nil, nil
	}

	transfers := make([]Transfer, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		from := t.get(row, "from_stop_id")
		to := t.get(row, "to_stop_id")
		if from == "" || to == "" {
			return nil, errMalformed(t.name, line, errEmptyField("from_stop_id/to_stop_id"))
		}

		transferType, err := t.getInt(row, "transfer_type", line)
		if err != nil {
			return nil, err
		}
		minTime, err := t.getInt(row, "min_transfer_time", line)
		if err != nil {
			return nil, err
		}

		transfers = append(transfers, Transfer{
			FromStopID:      from,
			ToStopID:        to,
			TransferType:    transferType,
			MinTransferTime: minTime,
		})
	}

	return transfers, nil
}
