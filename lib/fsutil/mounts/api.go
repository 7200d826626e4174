package mounts

type MountEntry struct {
	Device     string
	MountPoint string
	Type       string
	Options    string
}

type MountTable struct {
	Entries []*MountEntry
}

// GetMountTable reads the mount table of the current process.
func GetMountTable() (*MountTable, error) {
	return getMountTable(procMounts)
}

// GetMountTableFromFile reads a mount table in /proc/mounts format.
func GetMountTableFromFile(filename string) (*MountTable, error) {
	return getMountTable(filename)
}

// FindEntry returns the entry for the mount point which contains path.
func (mt *MountTable) FindEntry(path string) *MountEntry {
	return mt.findEntry(path)
}

// MountPointsUnder returns path (if it is a mount point) and every mount
// point beneath it, ordered so that each mount point comes before the mount
// points it is nested in. Unmounting in the returned order is safe.
func (mt *MountTable) MountPointsUnder(path string) []string {
	return mt.mountPointsUnder(path)
}
