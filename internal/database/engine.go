// Package database implements the Corus multi-frame database transfer: the
// per-frame ACK/NACK retry loop and record reassembly described in
// spec.md §4.5.
package database

import (
	"github.com/pwitab/corus"
	"github.com/pwitab/corus/internal/frame"
	log "github.com/sirupsen/logrus"
)

const maxRetries = 3

// Channel is the transport collaborator the transfer engine drives: it
// reads frames and writes single control bytes (ACK/NACK).
type Channel interface {
	frame.Receiver
	Send(data []byte) error
}

// Transfer runs the ACK/NACK loop until the terminal frame (high bit set)
// is seen, then splits the accumulated record bytes into record-sized
// chunks. logger may be nil, in which case logrus.StandardLogger() is used.
func Transfer(ch Channel, logger *log.Logger) ([][]byte, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}

	var accumulated []byte
	var recordSize int
	var previousFrameNumber uint16
	retryCount := 0
	isFirstFrame := true

	for {
		f, err := frame.Read(ch)
		if err != nil {
			return nil, err
		}

		if !f.CRCValid {
			retryCount++
			logger.Warnf("[DATABASE] CRC mismatch, sending NACK (retry %d/%d)", retryCount, maxRetries)
			if retryCount > maxRetries {
				return nil, corus.NewCommunicationError("database transfer exceeded max retries after CRC failures")
			}
			if err := ch.Send([]byte{frame.NACK}); err != nil {
				return nil, corus.WrapCommunicationError("sending NACK", err)
			}
			continue
		}

		header, err := frame.ParseDatabaseHeader(f.Payload)
		if err != nil {
			return nil, err
		}

		var recordData []byte
		if isFirstFrame {
			if len(f.Payload) < 3 {
				return nil, corus.NewProtocolError("first database frame too short to carry record size")
			}
			recordSize = int(f.Payload[2])
			if recordSize == 0 {
				return nil, corus.NewProtocolError("empty response: record size is 0")
			}
			recordData = f.Payload[3:]
			isFirstFrame = false
			logger.Debugf("[DATABASE] first frame, record size %d bytes", recordSize)
		} else {
			if header.FrameNumber != previousFrameNumber+1 {
				return nil, corus.NewProtocolErrorf(
					"frame out of order: got %d, expected %d", header.FrameNumber, previousFrameNumber+1)
			}
			recordData = f.Payload[2:]
		}

		accumulated = append(accumulated, recordData...)

		if header.IsLast {
			logger.Debugf("[DATABASE] last frame %d received, %d bytes accumulated", header.FrameNumber, len(accumulated))
			break
		}

		if err := ch.Send([]byte{frame.ACK}); err != nil {
			return nil, corus.WrapCommunicationError("sending ACK", err)
		}
		previousFrameNumber = header.FrameNumber
		retryCount = 0
	}

	return splitRecords(accumulated, recordSize)
}

func splitRecords(data []byte, recordSize int) ([][]byte, error) {
	if len(data)%recordSize != 0 {
		return nil, corus.NewProtocolErrorf(
			"accumulated database bytes (%d) are not a multiple of record size (%d)", len(data), recordSize)
	}
	count := len(data) / recordSize
	records := make([][]byte, count)
	for i := 0; i < count; i++ {
		records[i] = data[i*recordSize : (i+1)*recordSize]
	}
	return records, nil
}
