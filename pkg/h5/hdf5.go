package h5

import (
	"fmt"

	sdsignals "github.com/jmbenlloch/sdsignals_go/pkg"
	"gonum.org/v1/hdf5"
)

const chunkSize = 32768

// Table is an extensible one dimensional compound dataset together with the
// number of rows already written to it.
type Table struct {
	Dataset *hdf5.Dataset
	Name    string
	Rows    int
}

func createFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &sdsignals.ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &sdsignals.ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

func createTable(group *hdf5.Group, name string, datatype interface{}, compressionLevel int) (*Table, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &sdsignals.ErrCreateTable{TableName: name, Err: err}
	}
	defer fileSpace.Close()

	// create property list
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &sdsignals.ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	chunks := []uint{chunkSize}
	if err := plist.SetChunk(chunks); err != nil {
		return nil, &sdsignals.ErrCreateTable{TableName: name, Err: err}
	}
	if compressionLevel > 0 {
		if err := plist.SetDeflate(compressionLevel); err != nil {
			return nil, &sdsignals.ErrCreateTable{TableName: name, Err: err}
		}
	}

	// create the memory data type
	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &sdsignals.ErrCreateTable{TableName: name, Err: err}
	}

	dset, err := group.CreateDatasetWith(name, dtype, fileSpace, plist)
	if err != nil {
		return nil, &sdsignals.ErrCreateTable{TableName: name, Err: err}
	}
	return &Table{Dataset: dset, Name: name}, nil
}

func writeEntryToTable[T any](table *Table, data T) error {
	array := []T{data}
	return writeArrayToTable(table, &array)
}

// writeArrayToTable appends the rows at the end of the table.
func writeArrayToTable[T any](table *Table, data *[]T) error {
	length := uint(len(*data))
	if length == 0 {
		return nil
	}
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return fmt.Errorf("error creating dataspace for %s: %w", table.Name, err)
	}
	defer dataspace.Close()

	// extend
	rowsInFile := uint(table.Rows)
	newsize := []uint{rowsInFile + length}
	if err := table.Dataset.Resize(newsize); err != nil {
		return fmt.Errorf("error resizing %s: %w", table.Name, err)
	}
	filespace := table.Dataset.Space()
	defer filespace.Close()

	start := []uint{rowsInFile}
	count := []uint{length}
	if err := filespace.SelectHyperslab(start, nil, count, nil); err != nil {
		return fmt.Errorf("error selecting rows of %s: %w", table.Name, err)
	}

	if err := table.Dataset.WriteSubset(data, dataspace, filespace); err != nil {
		return fmt.Errorf("error writing %s: %w", table.Name, err)
	}
	table.Rows += int(length)
	return nil
}

// readRowsFromTable reads count rows starting at offset.
func readRowsFromTable[T any](dataset *hdf5.Dataset, name string, offset int, count int) ([]T, error) {
	rows := make([]T, count)
	if count == 0 {
		return rows, nil
	}
	filespace := dataset.Space()
	defer filespace.Close()

	start := []uint{uint(offset)}
	counts := []uint{uint(count)}
	if err := filespace.SelectHyperslab(start, nil, counts, nil); err != nil {
		return nil, &sdsignals.ErrReadTable{TableName: name, Err: err}
	}
	memspace, err := hdf5.CreateSimpleDataspace(counts, nil)
	if err != nil {
		return nil, &sdsignals.ErrReadTable{TableName: name, Err: err}
	}
	defer memspace.Close()

	if err := dataset.ReadSubset(&rows, memspace, filespace); err != nil {
		return nil, &sdsignals.ErrReadTable{TableName: name, Err: err}
	}
	return rows, nil
}

func readTable[T any](dataset *hdf5.Dataset, name string) ([]T, error) {
	return readRowsFromTable[T](dataset, name, 0, tableLength(dataset))
}

func tableLength(dataset *hdf5.Dataset) int {
	space := dataset.Space()
	defer space.Close()
	return space.SimpleExtentNPoints()
}

func (t *Table) Close() error {
	if t == nil || t.Dataset == nil {
		return nil
	}
	return t.Dataset.Close()
}
